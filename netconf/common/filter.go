package common

// FilterType is the value of the type attribute of a <filter> element.
type FilterType string

// Filter types
const (
	SubtreeFilterType FilterType = "subtree"
	XPathFilterType   FilterType = "xpath"
)

// Namespace binds a prefix (ID) to a namespace URI (Path) on a <filter> element.
type Namespace struct {
	ID   string
	Path string
}

// Filter selects the portion of a datastore returned by get and get-config.
// For a subtree filter Value holds raw XML that is sent unescaped, for an
// xpath filter it holds the select expression.
type Filter struct {
	Type       FilterType
	Value      string
	Namespaces []Namespace
}

// SubtreeFilter returns a subtree filter holding the raw XML content.
func SubtreeFilter(content string, nslist ...Namespace) *Filter {
	return &Filter{Type: SubtreeFilterType, Value: content, Namespaces: nslist}
}

// XPathFilter returns an xpath filter selecting expr.
func XPathFilter(expr string, nslist ...Namespace) *Filter {
	return &Filter{Type: XPathFilterType, Value: expr, Namespaces: nslist}
}
