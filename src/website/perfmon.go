package website

import (
	"net/http"
	"strconv"
	"strings"

	"git.handmade.network/hmn/marsport/src/config"
	"git.handmade.network/hmn/marsport/src/perf"
)

const defaultPerfmonLimit = 100

// APIPerfmon returns the most recent request timings, newest first, each
// with its blocks arranged as a flame graph. Only available in dev, since
// the API is open to anonymous visitors.
//
// ?path=/api/spacex keeps requests whose path has that prefix, and ?limit=N
// caps the count.
func APIPerfmon(c *RequestContext) ResponseData {
	if config.Config.Env != config.Dev || c.PerfCollector == nil {
		return FourOhFour(c)
	}

	type perfRecord struct {
		Route    string          `json:"route"`
		Path     string          `json:"path"`
		Method   string          `json:"method"`
		Status   int             `json:"status"`
		Duration int64           `json:"duration"`
		Flame    *perf.FlameNode `json:"flame"`
	}

	query := c.Req.URL.Query()
	pathPrefix := query.Get("path")
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPerfmonLimit
	}

	b := c.Perf.StartBlock("PERF", "Requesting perf data")
	perfData := c.PerfCollector.GetPerfCopy(c)
	b.End()

	b = c.Perf.StartBlock("PERF", "Building flame graphs")
	records := []perfRecord{}
	for i := len(perfData.AllRequests) - 1; i >= 0 && len(records) < limit; i-- {
		rp := &perfData.AllRequests[i]
		if !strings.HasPrefix(rp.Path, pathPrefix) {
			continue
		}
		flame := rp.Flame()
		records = append(records, perfRecord{
			Route:    rp.Route,
			Path:     rp.Path,
			Method:   rp.Method,
			Status:   rp.Status,
			Duration: flame.Duration,
			Flame:    flame,
		})
	}
	b.End()

	var res ResponseData
	res.StatusCode = http.StatusOK
	res.WriteJson(records, c.Perf)
	return res
}
