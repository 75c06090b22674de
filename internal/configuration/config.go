package configuration

import (
	"os"
	"time"

	"github.com/markusressel/hydro2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath    string `json:"dbPath"`
	StatePath string `json:"statePath"`

	Sampling SamplingConfig `json:"sampling"`

	Sensors []SensorConfig `json:"sensors"`
	Pumps   []PumpConfig   `json:"pumps"`

	Reservoir ReservoirConfig `json:"reservoir"`
	Profile   PlantProfile    `json:"profile"`

	Controllers ControllersConfig `json:"controllers"`
	Calibration CalibrationConfig `json:"calibration"`
	Supervisor  SupervisorConfig  `json:"supervisor"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Mqtt       MqttConfig       `json:"mqtt"`
	Profiling  ProfilingConfig  `json:"profiling"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("hydro2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/hydro2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/hydro2go/hydro2go.db")
	viper.SetDefault("statepath", "/etc/hydro2go/state.csv")

	viper.SetDefault("sampling.samples", 5)
	viper.SetDefault("sampling.discard", 3)
	viper.SetDefault("sampling.retriesPerSample", 5)
	viper.SetDefault("sampling.interSampleDelay", 1*time.Second)
	viper.SetDefault("sampling.retryDelay", 500*time.Millisecond)

	viper.SetDefault("sensors", []SensorConfig{})
	viper.SetDefault("pumps", []PumpConfig{})

	viper.SetDefault("profile.name", "default")

	viper.SetDefault("controllers.water.onTime", 1200*time.Millisecond)
	viper.SetDefault("controllers.water.offTime", 4300*time.Millisecond)
	viper.SetDefault("controllers.water.feedForwardRatio", 0.92)
	viper.SetDefault("controllers.water.maxBursts", DefaultWaterMaxBursts)
	viper.SetDefault("controllers.dosing.tolerance", 0.0)
	viper.SetDefault("controllers.dosing.settleTime", 30*time.Second)
	viper.SetDefault("controllers.dosing.maxCycles", DefaultDosingMaxCycles)
	viper.SetDefault("controllers.ph.upTime", 300*time.Millisecond)
	viper.SetDefault("controllers.ph.downTime", 300*time.Millisecond)
	viper.SetDefault("controllers.ph.settleTime", 7*time.Second)
	viper.SetDefault("controllers.ph.maxCycles", DefaultPhMaxCycles)

	viper.SetDefault("calibration.levels", DefaultCalibrationLevels())
	viper.SetDefault("calibration.burstOnTime", 1200*time.Millisecond)
	viper.SetDefault("calibration.burstOffTime", 4300*time.Millisecond)
	viper.SetDefault("calibration.stopTimeout", 10*time.Second)
	viper.SetDefault("calibration.settleDelay", 5*time.Second)

	viper.SetDefault("supervisor.checkInterval", 10*time.Minute)
	viper.SetDefault("supervisor.waterThreshold", 0.5)
	viper.SetDefault("supervisor.ppmSafetyMargin", 50.0)
	viper.SetDefault("supervisor.postFillSettle", 30*time.Second)
	viper.SetDefault("supervisor.purgeDuration", 25*time.Second)
	viper.SetDefault("supervisor.skipSetupWaterLevel", 2.0)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.clientId", "hydro2go")
	viper.SetDefault("mqtt.topicPrefix", "hydro2go")

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)
}

// DetectConfigFile returns the path of the configuration file viper resolved
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func DetectAndReadConfigFile() string {
	configPath := DetectConfigFile()
	LoadConfig()
	return configPath
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.FatalWithoutStacktrace("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		DefaultTrueBoolHookFunc(),
		PumpDirectionHookFunc(),
	)
}
