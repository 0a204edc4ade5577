package inventory

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	toggleTitleBar   key.Binding
	toggleStatusBar  key.Binding
	togglePagination key.Binding
	toggleHelpMenu   key.Binding
	update           key.Binding
	add              key.Binding
	editGrid         key.Binding
	openFilters      key.Binding
	clearFilters     key.Binding
	refresh          key.Binding
	saveGrid         key.Binding
	exitAltView      key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		toggleTitleBar: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "toggle title"),
		),
		toggleStatusBar: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle status"),
		),
		togglePagination: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "toggle pagination"),
		),
		toggleHelpMenu: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle help"),
		),
		update: key.NewBinding(
			key.WithKeys("U", "enter"),
			key.WithHelp("↵", "update entry"),
		),
		add: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add entry"),
		),
		editGrid: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit as grid"),
		),
		openFilters: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search & filters"),
		),
		clearFilters: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear filters"),
		),
		refresh: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "refresh data"),
		),
		saveGrid: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save grid edits"),
		),
		exitAltView: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit alt view"),
		),
	}
}

func (k *listKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		k.update,
		k.add,
		k.editGrid,
		k.openFilters,
		k.clearFilters,
		k.refresh,
		k.toggleTitleBar,
		k.toggleStatusBar,
		k.togglePagination,
		k.toggleHelpMenu,
	}
}
