// Program towerwitch ties the GPS fix stream to the location-aware data
// pipeline: the movement tracker decides when to refetch, the merger settles
// each dataset from API, cache, or seeds, and the results feed the terminal
// dashboard and the tower broadcaster.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"towerwitch/broadcast"
	"towerwitch/cache"
	"towerwitch/config"
	"towerwitch/geo"
	"towerwitch/gpsd"
	"towerwitch/merger"
	"towerwitch/motion"
	"towerwitch/radioref"
	"towerwitch/simplex"
	"towerwitch/sites"
	"towerwitch/ui"
)

const (
	defaultConfigPath = "data/config.yaml"
	envConfigPath     = "TW_CONFIG_PATH"

	// how often the pipeline re-evaluates even without a fresh fix
	pipelineTick = 5 * time.Second

	// ceiling between merge passes when the position has not drifted past
	// the resort distance
	mergeRefreshInterval = time.Minute
)

func main() {
	configPath := flag.String("config", resolveConfigPath(), "path to config file")
	consoleMode := flag.Bool("console", false, "run without the dashboard")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "towerwitch: %v\n", err)
		os.Exit(1)
	}

	fanout, logErr := setupLogging(cfg.Logging, os.Stderr)
	log.SetFlags(0)
	log.SetOutput(fanout)
	defer fanout.Close()
	if logErr != nil {
		log.Printf("file logging unavailable: %v", logErr)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cancel, *configPath, cfg, fanout, *consoleMode); err != nil {
		log.Printf("fatal: %v", err)
		fanout.Close()
		os.Exit(1)
	}
}

func resolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return defaultConfigPath
}

func run(ctx context.Context, cancel context.CancelFunc, configPath string, cfg *config.Config, fanout *logFanout, consoleMode bool) error {
	store, err := cache.NewStore(cfg.Cache.Dir)
	if err != nil {
		log.Printf("cache degraded: %v", err)
	}
	if flush, err := config.ConsumeForceRefresh(configPath, cfg); err != nil {
		log.Printf("force refresh: %v", err)
	} else if flush {
		log.Printf("force refresh requested, clearing cache")
		if err := store.ClearAll(); err != nil {
			log.Printf("cache clear: %v", err)
		}
	}

	tracker := motion.NewTracker()

	client := radioref.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.Timeout())
	var fetcher merger.Fetcher
	if client != nil {
		fetcher = client
	} else {
		log.Printf("no API key configured, running from cache and seeds")
	}
	merged := merger.New(fetcher, store, tracker)

	var siteStore *sites.Store
	if cfg.Sites.CSVPath != "" {
		siteStore, err = sites.Open(cfg.Sites.CSVPath, cfg.Sites.DBPath)
		if err != nil {
			log.Printf("site database unavailable: %v", err)
		} else {
			defer siteStore.Close()
			if n, err := siteStore.Count(); err == nil {
				log.Printf("site database ready with %d sites", n)
			}
		}
	}

	var simplexEntries []simplex.Entry
	if cfg.Simplex.CSVPath != "" {
		simplexEntries, err = simplex.Load(cfg.Simplex.CSVPath)
		if err != nil {
			log.Printf("simplex reference unavailable: %v", err)
		}
	}

	var sender *broadcast.UDPSender
	if cfg.UDP.Enabled {
		sender, err = broadcast.NewUDPSender(cfg.UDP.BroadcastIP, cfg.UDP.Port, cfg.UDP.Interval())
		if err != nil {
			log.Printf("udp broadcast unavailable: %v", err)
		} else {
			defer sender.Close()
		}
	}
	var publisher *broadcast.MQTTPublisher
	if cfg.MQTT.Enabled {
		publisher, err = broadcast.NewMQTTPublisher(cfg.MQTT.Broker, cfg.MQTT.Port, cfg.MQTT.Topic)
		if err != nil {
			log.Printf("mqtt broadcast unavailable: %v", err)
		} else {
			defer publisher.Close()
		}
	}

	reader := gpsd.NewReader(cfg.GPS.Binary)
	fixes := reader.Fixes()
	if err := reader.Start(); err != nil {
		log.Printf("GPS unavailable (%v), using demo position %.4f,%.4f",
			err, cfg.GPS.DemoLat, cfg.GPS.DemoLon)
		fixes = demoFixes(ctx, cfg.GPS.DemoLat, cfg.GPS.DemoLon)
	} else {
		defer reader.Stop()
	}

	var dash *ui.Dashboard
	interactive := !consoleMode && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		dash = ui.New(cfg.UI.NightMode)
		merged.Subscribe(dash.HandleUpdate)
		if len(simplexEntries) > 0 {
			go dash.SetSimplex(simplexEntries)
		}
		// the dashboard owns the terminal; logs go to file only
		fanout.SetConsoleSink(nil, false)
	}

	pipe := &pipeline{
		cfg:       cfg,
		store:     store,
		tracker:   tracker,
		merged:    merged,
		siteStore: siteStore,
		sender:    sender,
		publisher: publisher,
		dash:      dash,
	}

	startStatusMonitor(ctx, fanout, func() statusSnapshot {
		return pipe.status(client)
	})

	go pipe.run(ctx, fixes)

	if dash != nil {
		err := dash.Run()
		cancel()
		return err
	}
	log.Printf("running in console mode, Ctrl-C to exit")
	<-ctx.Done()
	return nil
}

// demoFixes emits the configured fallback position at the pipeline cadence
// when no GPS source is available.
func demoFixes(ctx context.Context, lat, lon float64) <-chan geo.Position {
	ch := make(chan geo.Position, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(pipelineTick)
		defer ticker.Stop()
		for {
			p := geo.Position{Lat: lat, Lon: lon, Time: time.Now()}
			select {
			case ch <- p:
			default:
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ch
}

// pipeline is the single consumer of GPS fixes. Keeping all merge and
// broadcast decisions on one goroutine means the tracker sees fixes in
// order and the merger never runs two passes at once.
type pipeline struct {
	cfg       *config.Config
	store     *cache.Store
	tracker   *motion.Tracker
	merged    *merger.Merger
	siteStore *sites.Store
	sender    *broadcast.UDPSender
	publisher *broadcast.MQTTPublisher
	dash      *ui.Dashboard
	now       func() time.Time

	// touched only on the run goroutine
	lastFix   geo.Position
	hasFix    bool
	lastMerge time.Time
	ranked    []sites.Ranked
}

func (pl *pipeline) run(ctx context.Context, fixes <-chan geo.Position) {
	ticker := time.NewTicker(pipelineTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case fix, ok := <-fixes:
			if !ok {
				return
			}
			pl.handleFix(ctx, fix)
		case <-ticker.C:
			if pl.hasFix {
				pl.evaluate(ctx, pl.lastFix)
			}
		}
	}
}

func (pl *pipeline) handleFix(ctx context.Context, p geo.Position) {
	regime := pl.tracker.Observe(p)
	pl.lastFix = p
	pl.hasFix = true

	if pl.dash != nil {
		pl.dash.SetPosition(p, regime)
	}
	pl.evaluate(ctx, p)
}

// evaluate runs one merge/broadcast pass. Merges run when the position has
// drifted past the resort distance or the refresh ceiling has lapsed; the
// nearest-site query has its own movement gate so sitting still never hits
// the database.
func (pl *pipeline) evaluate(ctx context.Context, p geo.Position) {
	now := pl.clock()

	if pl.merged.NeedsResort(p) || pl.lastMerge.IsZero() || now.Sub(pl.lastMerge) >= mergeRefreshInterval {
		pl.lastMerge = now
		pl.merged.MergeAmateur(ctx, p)
		pl.merged.MergeSkywarn(ctx, p)
		noaaRows, _ := pl.merged.MergeNOAA(p)
		if pl.dash != nil {
			pl.dash.SetNOAA(noaaRows)
		}
	}

	if pl.siteStore != nil && pl.tracker.ShouldRefetch("sites", p, motion.SiteThresholds(), now) {
		ranked, err := pl.siteStore.Closest(p.Lat, p.Lon, pl.cfg.Sites.Count)
		if err != nil {
			log.Printf("site query: %v", err)
		} else {
			pl.ranked = ranked
			pl.tracker.RecordFetch("sites", p, now)
			if pl.dash != nil {
				pl.dash.SetSites(ranked)
			}
		}
	}
	if len(pl.ranked) == 0 {
		return
	}

	pkt := broadcast.BuildPacket(p, pl.tracker.Regime(), pl.ranked, pl.cfg.UDP.TowerCount, now)
	if pl.sender != nil {
		if pl.sender.Send(pkt) && pl.publisher != nil {
			pl.publisher.Publish(pkt)
		}
	} else if pl.publisher != nil {
		pl.publisher.Publish(pkt)
	}
}

// clock returns the pipeline's time source, defaulting to the wall clock.
func (pl *pipeline) clock() time.Time {
	if pl.now != nil {
		return pl.now()
	}
	return time.Now()
}

func (pl *pipeline) status(client *radioref.Client) statusSnapshot {
	fix, hasFix := pl.tracker.LastFix()
	snap := statusSnapshot{
		HasFix:      hasFix,
		Fix:         fix,
		FixAt:       fix.Time,
		Regime:      pl.tracker.Regime(),
		CacheStatus: pl.cacheStatus(),
	}
	if client != nil {
		checkCtx, cancelCheck := context.WithTimeout(context.Background(), 5*time.Second)
		snap.APIOnline = client.Online(checkCtx)
		cancelCheck()
	}
	if pl.sender != nil {
		snap.BroadcastDisabled = pl.sender.Disabled()
	}
	return snap
}

func (pl *pipeline) cacheStatus() string {
	if pl.store == nil {
		return "unavailable"
	}
	return pl.store.Status()
}
