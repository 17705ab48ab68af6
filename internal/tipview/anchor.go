package tipview

// Element is an opaque handle to a node in the host's UI tree. The tip never
// inspects it; it only passes it back to the Host.
type Element any

// Anchor is something a tip can point at. Items that have no visual element
// report ok=false and showing a tip for them does nothing.
type Anchor interface {
	BackingElement() (Element, bool)
}

// ElementAnchor anchors a tip directly to an element.
type ElementAnchor struct {
	Element Element
}

func (a ElementAnchor) BackingElement() (Element, bool) {
	return a.Element, a.Element != nil
}

// ForElement is shorthand for ElementAnchor{Element: e}.
func ForElement(e Element) Anchor {
	return ElementAnchor{Element: e}
}

// TextItem is a toolbar or menu item that shows a title. It only has an
// element once the toolbar has rendered it.
type TextItem struct {
	Title string
	View  Element
}

func (i TextItem) BackingElement() (Element, bool) {
	return i.View, i.View != nil
}

// CustomItem is a toolbar item that wraps a caller-supplied element.
type CustomItem struct {
	Custom Element
}

func (i CustomItem) BackingElement() (Element, bool) {
	return i.Custom, i.Custom != nil
}
