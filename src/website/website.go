package website

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"git.handmade.network/hmn/marsport/src/config"
	"git.handmade.network/hmn/marsport/src/jobs"
	"git.handmade.network/hmn/marsport/src/logging"
	"git.handmade.network/hmn/marsport/src/perf"
	"git.handmade.network/hmn/marsport/src/shipments"
	"git.handmade.network/hmn/marsport/src/spacex"
	"git.handmade.network/hmn/marsport/src/templates"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/acme/autocert"
)

var demoItems int

var WebsiteCommand = &cobra.Command{
	Use:   "marsport",
	Short: "Run the Marsport website",
	Run: func(cmd *cobra.Command, args []string) {
		defer logging.LogPanics(nil)
		logging.Info().Msg("Hello, Mars!")

		templates.Init()

		var wg sync.WaitGroup

		store := shipments.NewStore()
		if demoItems > 0 {
			shipments.SeedDemo(store, demoItems)
			logging.Info().Int("count", demoItems).Msg("Seeded demo shipments")
		}

		spacexAPI := spacex.NewAPI(config.Config.SpaceX.BaseUrl, &http.Client{Timeout: 30 * time.Second})
		perfCollector, perfCollectorJob := perf.RunPerfCollector()
		liveFeed, liveFeedJob := RunLiveFeed(store)

		// Start background jobs
		wg.Add(1)
		backgroundJobs := jobs.Jobs{
			perfCollectorJob,
			liveFeedJob,
			spacex.MonitorUpstream(spacexAPI, spacex.MonitorConfig{
				Interval: config.Config.SpaceX.MonitorInterval,
			}),
		}

		// Create HTTP server
		wg.Add(1)
		server := http.Server{
			Addr: config.Config.Addr,
			Handler: NewWebsiteRoutes(Services{
				Shipments:     store,
				LiveFeed:      liveFeed,
				SpaceX:        spacexAPI,
				PerfCollector: perfCollector,
				StaticDir:     config.Config.StaticDir,
			}),
		}
		listen := configureTLS(&server)
		go func() {
			logging.Info().Str("addr", config.Config.Addr).Msg("Serving the website")
			serverErr := listen()
			if !errors.Is(serverErr, http.ErrServerClosed) {
				logging.Error().Err(serverErr).Msg("Server shut down unexpectedly")
			}
			// The wg.Done() happens in the shutdown logic below.
		}()

		// Wait for SIGINT in the background and trigger graceful shutdown
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		go func() {
			<-signals // First SIGINT (start shutdown)
			logging.Info().Msg("Shutting down the website")

			const timeout = 10 * time.Second

			go func() {
				logging.Info().Msg("Shutting down background jobs...")
				unfinished := backgroundJobs.CancelAndWait(timeout)
				if len(unfinished) == 0 {
					logging.Info().Msg("Background jobs closed gracefully")
				} else {
					logging.Warn().Strs("Unfinished", unfinished).Msg("Background jobs did not finish by the deadline")
				}
				wg.Done()
			}()

			// Gracefully shut down the HTTP server
			go func() {
				timeoutCtx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				err := server.Shutdown(timeoutCtx)
				if err != nil {
					logging.Warn().Err(err).Msg("Server did not shut down gracefully")
				}
				wg.Done()
			}()

			<-signals // Second SIGINT (force quit)
			logging.Warn().Strs("Unfinished background jobs", backgroundJobs.ListUnfinished()).Msg("Forcibly killed the website")
			os.Exit(1)
		}()

		// Wait for all of the above to finish, then exit
		wg.Wait()
	},
}

func init() {
	WebsiteCommand.Flags().IntVar(&demoItems, "demo-items", 0, "Fill the shipment list with this many made-up items")
}

/*
configureTLS picks how the server terminates TLS and returns the function
that starts it:

  - certificate files, if they are configured and exist
  - Let's Encrypt through autocert, if hosts are configured
  - plain HTTP otherwise
*/
func configureTLS(server *http.Server) func() error {
	tlsConfig := config.Config.TLS

	if tlsConfig.HasCertFiles() {
		if filesExist(tlsConfig.CertFile, tlsConfig.KeyFile) {
			logging.Info().Str("cert", tlsConfig.CertFile).Msg("Using TLS certificate files")
			return func() error {
				return server.ListenAndServeTLS(tlsConfig.CertFile, tlsConfig.KeyFile)
			}
		}
		logging.Warn().
			Str("cert", tlsConfig.CertFile).
			Str("key", tlsConfig.KeyFile).
			Msg("TLS certificate files are configured but missing")
	}

	if len(tlsConfig.AutocertHosts) > 0 {
		manager := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(tlsConfig.AutocertHosts...),
		}
		if tlsConfig.AutocertCacheDir != "" {
			manager.Cache = autocert.DirCache(tlsConfig.AutocertCacheDir)
		}
		server.TLSConfig = &tls.Config{
			GetCertificate: manager.GetCertificate,
			NextProtos:     []string{"h2", "http/1.1", "acme-tls/1"},
		}
		logging.Info().Strs("hosts", tlsConfig.AutocertHosts).Msg("Using Let's Encrypt certificates")
		return func() error {
			return server.ListenAndServeTLS("", "")
		}
	}

	if tlsConfig.Enabled() {
		logging.Warn().Msg("TLS is configured but could not be set up, falling back to plain HTTP")
	}
	if config.Config.Auth.CookieSecure {
		logging.Warn().Msg("Serving plain HTTP; session cookies marked Secure will not be sent back")
	}
	return server.ListenAndServe
}

func filesExist(paths ...string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}
