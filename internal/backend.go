package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/hydro2go/internal/api"
	"github.com/markusressel/hydro2go/internal/configuration"
	"github.com/markusressel/hydro2go/internal/controller"
	"github.com/markusressel/hydro2go/internal/persistence"
	"github.com/markusressel/hydro2go/internal/pumps"
	"github.com/markusressel/hydro2go/internal/sensors"
	"github.com/markusressel/hydro2go/internal/statistics"
	"github.com/markusressel/hydro2go/internal/supervisor"
	"github.com/markusressel/hydro2go/internal/telemetry"
	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reef-pi/rpi/i2c"
)

const shutdownTimeout = 5 * time.Second

// Objects holds the hardware objects created from the configuration
type Objects struct {
	Sensors []sensors.Sensor
	Pumps   []pumps.Pump

	bus i2c.Bus
}

// Close releases the i2c bus, if one was opened
func (o *Objects) Close() {
	if o.bus == nil {
		return
	}
	if err := o.bus.Close(); err != nil {
		ui.Warning("Error closing i2c bus: %v", err)
	}
}

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Warning("hydro2go usually needs root permissions to access the i2c bus and GPIO pins")
	}

	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}
	stateStore := persistence.NewStateStore(config.StatePath)
	hub := telemetry.NewHub(telemetry.DefaultLogSize)
	controllerStatistics := &controller.Statistics{}

	objects, err := InitializeObjects(config)
	if err != nil {
		ui.Fatal("%v", err)
	}
	defer objects.Close()

	statistics.Register(
		statistics.NewSensorCollector(objects.Sensors),
		statistics.NewPumpCollector(objects.Pumps),
		statistics.NewControllerCollector(controllerStatistics),
		statistics.NewTelemetryCollector(hub),
	)

	reservoir, err := supervisor.NewReservoir(config, hub)
	if err != nil {
		ui.Fatal("%v", err)
	}
	sup := supervisor.NewSupervisor(config, reservoir, ui.NewTerminalOperator(), pers, stateStore, controllerStatistics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addHttpServer(&g, "statistics", config.Statistics.Address(), mux)
	}
	if config.Profiling.Enabled {
		// === pprof
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		addHttpServer(&g, "profiling", config.Profiling.Address(), mux)
	}
	if config.Api.Enabled {
		// === REST API
		rest := api.CreateRestService(api.Backend{
			Telemetry:  hub,
			State:      stateStore,
			Statistics: controllerStatistics,
		})
		addHttpServer(&g, "api", config.Api.Address(), rest)
	}
	if config.Mqtt.Enabled {
		// === MQTT telemetry
		client, err := telemetry.NewMqttClient(config.Mqtt)
		if err != nil {
			ui.Error("MQTT publishing disabled: %v", err)
		} else {
			hub.AddListener(telemetry.NewMqttPublisher(client, config.Mqtt.TopicPrefix))
			g.Add(func() error {
				<-ctx.Done()
				return nil
			}, func(err error) {
				client.Disconnect(250)
				ui.Info("MQTT client disconnected.")
			})
		}
	}
	{
		// === reservoir supervisor, the only actor that actuates pumps
		g.Add(func() error {
			err := sup.Run(ctx)
			ui.Info("Reservoir supervisor stopped.")
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	// last resort, the supervisor already stopped its pumps on a regular exit
	_ = pumps.StopAll()
	objects.Close()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func addHttpServer(g *run.Group, name string, addr string, handler http.Handler) {
	server := &http.Server{Addr: addr, Handler: handler}
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if err != nil {
			ui.Error("Cannot start %s server (%s)", name, err.Error())
		}
		return err
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("%s server stopped.", name)
		}
	})
}

// InitializeObjects creates every configured sensor and pump and registers them
// in the SensorMap and PumpMap. The i2c bus is only opened if an atlas sensor is configured.
func InitializeObjects(config configuration.Configuration) (*Objects, error) {
	objects := &Objects{}

	var bus sensors.AtlasBus
	if needsI2cBus(config) {
		b, err := i2c.New()
		if err != nil {
			return nil, fmt.Errorf("unable to open i2c bus: %w", err)
		}
		objects.bus = b
		bus = b
	}

	for _, sensorConfig := range config.Sensors {
		sensor, err := sensors.NewSensor(sensorConfig, bus)
		if err != nil {
			objects.Close()
			return nil, fmt.Errorf("unable to process sensor configuration %s: %w", sensorConfig.ID, err)
		}
		sensors.SensorMap.Set(sensorConfig.ID, sensor)
		objects.Sensors = append(objects.Sensors, sensor)
	}

	for _, pumpConfig := range config.Pumps {
		pump, err := pumps.NewPump(pumpConfig)
		if err != nil {
			objects.Close()
			return nil, fmt.Errorf("unable to process pump configuration %s: %w", pumpConfig.ID, err)
		}
		pumps.PumpMap.Set(pumpConfig.ID, pump)
		objects.Pumps = append(objects.Pumps, pump)
	}

	return objects, nil
}

func needsI2cBus(config configuration.Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Atlas != nil {
			return true
		}
	}
	return false
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Warning("Error checking process owner: %v", err)
		return ""
	}
	return strings.TrimSpace(string(stdout))
}
