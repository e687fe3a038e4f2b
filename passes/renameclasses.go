package passes

import (
	"gssc/gss"
	"gssc/rename"
)

// RenameClasses rewrites every class selector part through the job's
// substitution map. Excluded classes keep their original names and are not
// fed to the map, so they never consume a generated short name.
type RenameClasses struct {
	Map      rename.SubstitutionMap
	Excluded map[string]bool
}

func (*RenameClasses) Name() string { return "rename-classes" }

func (p *RenameClasses) Run(root *gss.Root, _ *gss.ErrorManager) {
	gss.VisitFunc(root, func(_ *gss.Cursor, n gss.Node) bool {
		part, ok := n.(*gss.SelectorPart)
		if !ok {
			return true
		}
		if part.Kind == gss.PartClass && !p.Excluded[part.Value] {
			part.Value = p.Map.Get(part.Value)
		}
		return false
	}, nil)
}
