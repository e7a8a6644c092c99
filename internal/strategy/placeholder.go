package strategy

import "fmt"

// emptyMessage is the fixed informational text shown when no configuration
// entries are visible at all.
const emptyMessage = "## No access control entries found\n\n" +
	"Slotboard could not find any access-control configuration entries on " +
	"the hub. Add one on the hub, then reload this dashboard."

// EmptyTree is the terminal output for an empty registry: a single view
// carrying the fixed empty-state message. Nothing else is rendered.
func EmptyTree() Tree {
	return messageTree("Overview", "overview", emptyMessage)
}

// NotFoundTree is the terminal output when an entry lookup fails. The
// message names whichever key the caller used, ID or title.
func NotFoundTree(selector string) Tree {
	return messageTree("Error", "error", fmt.Sprintf(
		"## Entry not found\n\nNo configuration entry matched `%s`. "+
			"Check the `entries` list in the dashboard configuration.", selector))
}

// ConfigErrorTree is the terminal output for an invalid dashboard
// configuration, with guidance on the mutually exclusive selector keys.
func ConfigErrorTree(detail string) Tree {
	return messageTree("Error", "error", fmt.Sprintf(
		"## Configuration error\n\n%s\n\nEach entry selector must set "+
			"exactly one of `id` or `title`.", detail))
}

// StartingTree is the placeholder shown while the hub reports it has not
// finished initialising. Transient state, not a failure.
func StartingTree() Tree {
	return messageTree("Starting", "starting",
		"## Starting up\n\nThe hub is still initialising. This dashboard "+
			"will populate once startup completes.")
}

// UnavailableTree is the terminal output when the hub cannot be reached
// and no cached snapshot exists to fall back on.
func UnavailableTree() Tree {
	return messageTree("Error", "error",
		"## Hub unavailable\n\nSlotboard could not reach the hub and has "+
			"no cached data to show. The dashboard will recover on the "+
			"next successful refresh.")
}

// messageTree wraps a single markdown card into a well-formed tree.
func messageTree(title, path, content string) Tree {
	return Tree{
		Title: DashboardTitle,
		Views: []View{{
			Title: title,
			Path:  path,
			Cards: []Card{{Type: "markdown", Content: content}},
		}},
	}
}

// placeholderView is appended when a tree would otherwise hold exactly one
// view. The host renderer hides the tab bar for single-view dashboards,
// which also hides the view's own heading; an empty second view forces the
// chrome back without rendering any content.
func placeholderView() View {
	return View{Path: "placeholder"}
}
