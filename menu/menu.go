// Package menu contains the targets of the glitch highlight: the menu
// items of the hosting page in a browser, or a drawn overlay when
// running as a native window.
package menu

// ActiveClass is the css class toggled on the highlighted menu item.
const ActiveClass = "glitch-active"

// Selector matches the menu items in the hosting page.
const Selector = ".menu-item"

// DefaultLabels are used for the overlay if no labels are configured.
var DefaultLabels = []string{"Home", "Work", "About", "Contact"}
