package execution

// Node is a workflow node as the canvas sees it. Configuration and Metadata
// are left untyped here; each component decodes its own shape.
type Node struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ComponentName string         `json:"componentName"`
	IsCollapsed   bool           `json:"isCollapsed"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Component describes the component definition a node is an instance of.
type Component struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Document is everything needed to render one node: the node itself, its
// component definition, the rest of the canvas, and its recent executions
// ordered newest first.
type Document struct {
	Node       Node
	Component  Component
	Nodes      []Node
	Executions []*Execution
}

// Latest returns the most recent execution, or nil when there is none.
func (d *Document) Latest() *Execution {
	if d == nil || len(d.Executions) == 0 {
		return nil
	}
	return d.Executions[0]
}

// FindNode returns the canvas node with the given id.
func (d *Document) FindNode(id string) *Node {
	if d == nil || id == "" {
		return nil
	}
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}
