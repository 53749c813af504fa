package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RefreshHeader names the list the client should re-render after a mutation
// when the fragment strategy is active.
const RefreshHeader = "X-Refresh"

// RefreshStrategy is how the UI learns that a mutation went through. The two
// implementations correspond to the console's two hosting styles: a classic
// full-page reload and a fragment re-render driven by the client script.
type RefreshStrategy interface {
	Done(c echo.Context, tab string) error
}

// ReloadRefresh sends the browser back to the affected tab, reloading the
// whole page.
type ReloadRefresh struct{}

func (ReloadRefresh) Done(c echo.Context, tab string) error {
	return c.Redirect(http.StatusSeeOther, "/?tab="+tab)
}

// FragmentRefresh answers 204 and names the stale list in a header; the page
// script re-fetches just that fragment.
type FragmentRefresh struct{}

func (FragmentRefresh) Done(c echo.Context, tab string) error {
	c.Response().Header().Set(RefreshHeader, tab)
	return c.NoContent(http.StatusNoContent)
}

// StrategyFor maps the configured UI mode to a strategy, defaulting to the
// full reload.
func StrategyFor(mode string) RefreshStrategy {
	if mode == "fragment" {
		return FragmentRefresh{}
	}
	return ReloadRefresh{}
}
