package website

import (
	"net/http"

	"git.handmade.network/hmn/marsport/src/marsurl"
)

func NewWebsiteRoutes(services Services) http.Handler {
	router := &Router{Services: services}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			requestIDMiddleware,
			trackRequestPerf,
			logContextErrorsMiddleware,
			panicCatcherMiddleware,
			loadSession,
			routeGuard,
		},
	}

	routes.GET(marsurl.RegexClientModule, ClientModule)
	routes.GET(marsurl.RegexStatic, StaticFile)

	routes.GET(marsurl.RegexAPIUser, APIUser)
	routes.POST(marsurl.RegexAPILogin, APILogin)
	routes.DELETE(marsurl.RegexAPILogout, APILogout)

	routes.GET(marsurl.RegexAPISentToMars, APISentToMars)
	routes.GET(marsurl.RegexAPISentToMarsLive, APISentToMarsLive)
	routes.POST(marsurl.RegexAPISendToMars, APISendToMars)
	routes.DELETE(marsurl.RegexAPICancelSendingToMars, APICancelSendingToMars)

	spacexRoutes := routes.Group(marsurl.RegexAPISpaceX)
	spacexRoutes.GET(marsurl.RegexAPISpaceXCompany, APISpaceXCompany)
	spacexRoutes.GET(marsurl.RegexAPISpaceXHistory, APISpaceXHistory)
	spacexRoutes.GET(marsurl.RegexAPISpaceXHistoryEvent, APISpaceXHistoryEvent)
	spacexRoutes.GET(marsurl.RegexAPISpaceXRockets, APISpaceXRockets)
	spacexRoutes.GET(marsurl.RegexAPISpaceXRocket, APISpaceXRocket)
	spacexRoutes.GET(marsurl.RegexAPISpaceXRoadster, APISpaceXRoadster)

	routes.GET(marsurl.RegexAPIPerfmon, APIPerfmon)

	routes.AnyMethod(marsurl.RegexAPIAny, FourOhFour)
	routes.GET(marsurl.RegexCatchAll, AppShell)
	routes.AnyMethod(marsurl.RegexCatchAll, MethodNotAllowed)

	return router
}

func MethodNotAllowed(c *RequestContext) ResponseData {
	var res ResponseData
	res.StatusCode = http.StatusMethodNotAllowed
	res.Write([]byte("Method Not Allowed"))
	return res
}
