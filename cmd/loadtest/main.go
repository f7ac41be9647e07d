package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codewandler/cacheroo-go/adapters/prometheus"
	"github.com/codewandler/cacheroo-go/core/store"
)

// === Config ===

var (
	N           = getEnvInt("N", 100_000)
	workers     = getEnvInt("WORKERS", runtime.GOMAXPROCS(0))
	numKeys     = getEnvInt("KEYS", 10_000)
	shards      = getEnvInt("SHARDS", 0)
	ttl         = getEnvDuration("TTL", 0)
	metricsAddr = getEnv("METRICS_ADDR", "")
	logLevel    = getEnvLevel("LOG_LEVEL", slog.LevelInfo)
)

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, fmt.Sprintf("%d", fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(getEnv(key, fallback.String())))); err != nil {
		return fallback
	}
	return l
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("loadtest failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	if workers <= 0 || numKeys <= 0 || N <= 0 {
		return errors.New("N, WORKERS and KEYS must be positive")
	}

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := prometheus.NewStoreMetrics(reg)

	opts := []store.Option{
		store.WithName("loadtest"),
		store.WithLogger(log),
		store.WithMetrics(m.For("loadtest")),
	}

	var s store.Map[string, []byte]
	if shards > 0 {
		s = store.NewSharded[[]byte](shards, opts...)
	} else {
		s = store.New[string, []byte](opts...)
	}

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})}
		go func() {
			log.Info("serving metrics", slog.String("addr", metricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	keys, err := makeKeys(numKeys)
	if err != nil {
		return err
	}

	log.Info("starting",
		slog.Int("ops_per_worker", N),
		slog.Int("workers", workers),
		slog.Int("keys", numKeys),
		slog.Int("shards", shards),
		slog.Duration("ttl", ttl),
	)

	var (
		wg                             sync.WaitGroup
		inserts, hits, misses, removes atomic.Int64
	)
	startAt := time.Now()

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value := []byte(fmt.Sprintf("worker-%d", w))
			for i := 0; i < N; i++ {
				if i%1024 == 0 && ctx.Err() != nil {
					return
				}
				k := keys[rand.IntN(len(keys))]
				switch op := rand.IntN(10); {
				case op < 3:
					if ttl > 0 {
						s.InsertWithLifetime(k, value, ttl)
					} else {
						s.Insert(k, value)
					}
					inserts.Add(1)
				case op < 9:
					if _, ok := s.Get(k); ok {
						hits.Add(1)
					} else {
						misses.Add(1)
					}
				default:
					s.Remove(k)
					removes.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	// === stats ===

	took := time.Since(startAt)
	total := inserts.Load() + hits.Load() + misses.Load() + removes.Load()
	mu := getMemUsage()

	log.Info("done",
		slog.Duration("took", took),
		slog.Int64("ops", total),
		slog.Int("ops_per_sec", int(float64(total)/took.Seconds())),
		slog.Int64("inserts", inserts.Load()),
		slog.Int64("hits", hits.Load()),
		slog.Int64("misses", misses.Load()),
		slog.Int64("removes", removes.Load()),
		slog.Int("entries", s.Len()),
		slog.Uint64("alloc_mib", mu.Alloc/1024/1024),
		slog.Uint64("sys_mib", mu.Sys/1024/1024),
	)

	s.Clear()
	return ctx.Err()
}

func makeKeys(n int) ([]string, error) {
	keys := make([]string, n)
	for i := range keys {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		keys[i] = "key-" + id
	}
	return keys, nil
}

// === stats helpers ===

type MemUsage struct {
	Alloc uint64 // bytes allocated and not yet freed (heap)
	Sys   uint64 // total bytes obtained from OS
}

func getMemUsage() MemUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemUsage{
		Alloc: m.Alloc,
		Sys:   m.Sys,
	}
}
