package network

import "fmt"

// Renderer is the drawing capability set a presentation layer implements.
// Render calls it edges first so nodes sit on top.
type Renderer interface {
	DrawEdges(edges []Edge, style Style) error
	DrawNodes(nodes []Node, style Style) error
	DrawLegend(legend Legend, title string) error
}

// Render hands a snapshot to r
func Render(s *Snapshot, r Renderer) error {
	if err := r.DrawEdges(s.Edges, s.Style); err != nil {
		return fmt.Errorf("drawing edges: %w", err)
	}
	if err := r.DrawNodes(s.Nodes, s.Style); err != nil {
		return fmt.Errorf("drawing nodes: %w", err)
	}
	if err := r.DrawLegend(s.Legend, s.Title); err != nil {
		return fmt.Errorf("drawing legend: %w", err)
	}
	return nil
}
