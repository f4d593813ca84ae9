package marsurl

import (
	"net/url"
	"regexp"

	"git.handmade.network/hmn/marsport/src/oops"
)

/*
Every route comes as a pair: a Regex used by the router and a Build function
that produces a path the Regex accepts. The Build functions return paths
only; use Url to attach a host.
*/

var RegexHomepage = regexp.MustCompile("^/$")

func BuildHomepage() string {
	return "/"
}

var RegexLogin = regexp.MustCompile("^/login$")

func BuildLogin() string {
	return "/login"
}

var RegexStatic = regexp.MustCompile(`^/static(/(?P<filepath>.*))?$`)

func BuildStatic(filepath string) string {
	return StaticPath + "/" + trim(filepath)
}

var RegexClientModule = regexp.MustCompile("^/client-module$")

func BuildClientModule() string {
	return "/client-module"
}

/*
* Session API
 */

var RegexAPIUser = regexp.MustCompile("^/api/user$")

func BuildAPIUser() string {
	return "/api/user"
}

var RegexAPILogin = regexp.MustCompile("^/api/login$")

func BuildAPILogin() string {
	return "/api/login"
}

var RegexAPILogout = regexp.MustCompile("^/api/logout$")

func BuildAPILogout() string {
	return "/api/logout"
}

/*
* Mars shipments
 */

var RegexAPISentToMars = regexp.MustCompile("^/api/sentToMars$")

func BuildAPISentToMars() string {
	return "/api/sentToMars"
}

var RegexAPISentToMarsLive = regexp.MustCompile("^/api/sentToMars/live$")

func BuildAPISentToMarsLive() string {
	return "/api/sentToMars/live"
}

var RegexAPISendToMars = regexp.MustCompile(`^/api/sendToMars/(?P<itemid>[^/]+)$`)

func BuildAPISendToMars(itemID string) string {
	mustBeItemID(itemID)
	return "/api/sendToMars/" + url.PathEscape(itemID)
}

var RegexAPICancelSendingToMars = regexp.MustCompile(`^/api/cancelSendingToMars/(?P<itemid>[^/]+)$`)

func BuildAPICancelSendingToMars(itemID string) string {
	mustBeItemID(itemID)
	return "/api/cancelSendingToMars/" + url.PathEscape(itemID)
}

func mustBeItemID(itemID string) {
	if itemID == "" {
		panic(oops.New(nil, "item id must not be empty"))
	}
}

/*
* Upstream proxy
 */

var RegexAPISpaceX = regexp.MustCompile("^/api/spacex")

var RegexAPISpaceXCompany = regexp.MustCompile("^/company$")

var RegexAPISpaceXHistory = regexp.MustCompile("^/history$")

var RegexAPISpaceXHistoryEvent = regexp.MustCompile(`^/history/(?P<eventid>[^/]+)$`)

var RegexAPISpaceXRockets = regexp.MustCompile("^/rockets$")

var RegexAPISpaceXRocket = regexp.MustCompile(`^/rockets/(?P<rocketid>[^/]+)$`)

var RegexAPISpaceXRoadster = regexp.MustCompile("^/roadster$")

func BuildAPISpaceX(resource string) string {
	return "/api/spacex/" + trim(resource)
}

var RegexAPIPerfmon = regexp.MustCompile("^/api/debug/perf$")

func BuildAPIPerfmon() string {
	return "/api/debug/perf"
}

var RegexAPIAny = regexp.MustCompile("^/api(/|$)")

/*
* Catch-all
 */

var RegexCatchAll = regexp.MustCompile("^")
