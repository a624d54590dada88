package ports

type Route string

const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
)

// Navigator receives navigation requests from the session service. The
// service never touches a rendering surface directly; whatever hosts it
// (CLI hint printer, watch TUI) decides what a route change means.
type Navigator interface {
	NavigateTo(route Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route Route)

func (f NavigatorFunc) NavigateTo(route Route) { f(route) }
