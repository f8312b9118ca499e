// pkg/screen/commandbar.go
package screen

// BuildCommandBar materializes the declared command bar against the active
// data container. Pure: same declarations and data give the same commands.
func (s *Screen) BuildCommandBar(repo *Repository) []Command {
	out := make([]Command, 0, len(s.def.CommandBar))
	for _, c := range s.def.CommandBar {
		if c.Visible != nil && !c.Visible(repo) {
			continue
		}
		out = append(out, c)
	}
	return out
}
