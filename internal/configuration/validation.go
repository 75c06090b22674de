package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/hydro2go/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validatePumps(config)
	if err != nil {
		return err
	}
	err = validateReservoir(config)
	if err != nil {
		return err
	}
	err = validateProfile(config)
	if err != nil {
		return err
	}
	err = validateSampling(config)
	if err != nil {
		return err
	}
	err = validateCalibration(config)
	if err != nil {
		return err
	}
	err = validateControllers(config)
	if err != nil {
		return err
	}

	if containsCmdObjects(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmdObjects(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}
	for _, pumpConfig := range config.Pumps {
		if pumpConfig.Motor != nil && pumpConfig.Motor.Cmd != nil {
			return true
		}
	}

	return false
}

func validateSensors(config *Configuration) error {
	var sensorIds []string
	supportedKinds := []string{SensorKindPh, SensorKindEc, SensorKindWaterRaw, SensorKindTemp}

	for _, sensorConfig := range config.Sensors {
		if slices.Contains(sensorIds, sensorConfig.ID) {
			return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
		}
		sensorIds = append(sensorIds, sensorConfig.ID)

		if !slices.Contains(supportedKinds, sensorConfig.Kind) {
			return fmt.Errorf("sensor %s: unsupported kind '%s', use one of: %s", sensorConfig.ID, sensorConfig.Kind, strings.Join(supportedKinds, " | "))
		}

		subConfigs := 0
		if sensorConfig.Atlas != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: atlas | file | cmd", sensorConfig.ID)
		}

		if sensorConfig.Atlas != nil {
			if sensorConfig.Kind != SensorKindPh && sensorConfig.Kind != SensorKindEc {
				return fmt.Errorf("sensor %s: atlas probes only support the kinds ph | ec", sensorConfig.ID)
			}
			if sensorConfig.Atlas.Address <= 0 || sensorConfig.Atlas.Address > 0x7F {
				return fmt.Errorf("sensor %s: invalid i2c address %d", sensorConfig.ID, sensorConfig.Atlas.Address)
			}
			temperatureSensor := sensorConfig.Atlas.TemperatureSensor
			if len(temperatureSensor) > 0 && !sensorIdExists(temperatureSensor, config) {
				return fmt.Errorf("sensor %s: no sensor definition with id '%s' found", sensorConfig.ID, temperatureSensor)
			}
		}

		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: missing file path", sensorConfig.ID)
		}
		if sensorConfig.Cmd != nil && len(sensorConfig.Cmd.Exec) <= 0 {
			return fmt.Errorf("sensor %s: missing executable", sensorConfig.ID)
		}
	}

	return nil
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	for _, sensor := range config.Sensors {
		if sensor.ID == sensorId {
			return true
		}
	}

	return false
}

func findSensor(sensorId string, config *Configuration) *SensorConfig {
	for i := range config.Sensors {
		if config.Sensors[i].ID == sensorId {
			return &config.Sensors[i]
		}
	}
	return nil
}

func validatePumps(config *Configuration) error {
	var pumpIds []string

	for _, pumpConfig := range config.Pumps {
		if slices.Contains(pumpIds, pumpConfig.ID) {
			return fmt.Errorf("duplicate pump id detected: %s", pumpConfig.ID)
		}
		pumpIds = append(pumpIds, pumpConfig.ID)

		subConfigs := 0
		if pumpConfig.Relay != nil {
			subConfigs++
		}
		if pumpConfig.Motor != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("pump %s: only one pump type can be used per pump definition block", pumpConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("pump %s: sub-configuration for pump is missing, use one of: relay | motor", pumpConfig.ID)
		}

		if pumpConfig.Motor != nil {
			motor := pumpConfig.Motor
			if (motor.File == nil) == (motor.Cmd == nil) {
				return fmt.Errorf("pump %s: motor needs exactly one driver, use one of: file | cmd", pumpConfig.ID)
			}
			if pumpConfig.Direction != PumpDirectionNormal && pumpConfig.Direction != PumpDirectionReversed {
				return fmt.Errorf("pump %s: invalid direction %d, use one of: normal | reversed", pumpConfig.ID, pumpConfig.Direction)
			}
			if pumpConfig.Speed <= 0 || pumpConfig.Speed > 1 {
				return fmt.Errorf("pump %s: speed must be in (0, 1]", pumpConfig.ID)
			}
		}

		if pumpConfig.Relay != nil && len(pumpConfig.Relay.Path) <= 0 {
			return fmt.Errorf("pump %s: missing gpio value path", pumpConfig.ID)
		}
	}

	return nil
}

func pumpIdExists(pumpId string, config *Configuration) bool {
	for _, pump := range config.Pumps {
		if pump.ID == pumpId {
			return true
		}
	}

	return false
}

func validateReservoir(config *Configuration) error {
	reservoir := config.Reservoir

	sensorRoles := []struct {
		role string
		id   string
		kind string
	}{
		{"waterLevelSensor", reservoir.WaterLevelSensor, SensorKindWaterRaw},
		{"ecSensor", reservoir.EcSensor, SensorKindEc},
		{"phSensor", reservoir.PhSensor, SensorKindPh},
		{"temperatureSensor", reservoir.TemperatureSensor, SensorKindTemp},
	}
	for _, r := range sensorRoles {
		if len(r.id) <= 0 {
			if r.role == "temperatureSensor" {
				continue
			}
			return fmt.Errorf("reservoir: missing %s", r.role)
		}
		sensor := findSensor(r.id, config)
		if sensor == nil {
			return fmt.Errorf("reservoir: no sensor definition with id '%s' found for %s", r.id, r.role)
		}
		if sensor.Kind != r.kind {
			return fmt.Errorf("reservoir: sensor '%s' used as %s must be of kind %s", r.id, r.role, r.kind)
		}
	}

	pumpRoles := map[string]string{
		"fillPump":   reservoir.FillPump,
		"phUpPump":   reservoir.PhUpPump,
		"phDownPump": reservoir.PhDownPump,
	}
	owners := map[string]string{}
	for _, role := range util.SortedKeys(pumpRoles) {
		id := pumpRoles[role]
		if len(id) <= 0 {
			return fmt.Errorf("reservoir: missing %s", role)
		}
		if !pumpIdExists(id, config) {
			return fmt.Errorf("reservoir: no pump definition with id '%s' found for %s", id, role)
		}
		if owner, ok := owners[id]; ok {
			return fmt.Errorf("reservoir: pump '%s' cannot be used as both %s and %s", id, owner, role)
		}
		owners[id] = role
	}

	for _, step := range config.Profile.DosingPlan {
		if owner, ok := owners[step.Pump]; ok {
			return fmt.Errorf("profile: dosing pump '%s' is already used as %s", step.Pump, owner)
		}
	}

	return nil
}

func validateProfile(config *Configuration) error {
	profile := config.Profile

	if profile.MinPh > profile.MaxPh {
		return fmt.Errorf("profile %s: minPh must not be greater than maxPh", profile.Name)
	}
	if profile.TargetPh < profile.MinPh || profile.TargetPh > profile.MaxPh {
		return fmt.Errorf("profile %s: targetPh must be within [minPh, maxPh]", profile.Name)
	}
	if profile.TargetPpm <= 0 {
		return fmt.Errorf("profile %s: targetPpm must be positive", profile.Name)
	}
	if profile.TargetWaterLevel <= 0 {
		return fmt.Errorf("profile %s: targetWaterLevel must be positive", profile.Name)
	}
	if len(profile.DosingPlan) <= 0 {
		return fmt.Errorf("profile %s: dosingPlan is empty", profile.Name)
	}
	for _, step := range profile.DosingPlan {
		if !pumpIdExists(step.Pump, config) {
			return fmt.Errorf("profile %s: no pump definition with id '%s' found", profile.Name, step.Pump)
		}
		if step.Duration <= 0 {
			return fmt.Errorf("profile %s: dosing duration for pump '%s' must be positive", profile.Name, step.Pump)
		}
	}

	return nil
}

func validateSampling(config *Configuration) error {
	sampling := config.Sampling
	if sampling.Samples <= 0 {
		return errors.New("sampling: samples must be >= 1")
	}
	if sampling.Discard < 0 {
		return errors.New("sampling: discard must be >= 0")
	}
	if sampling.RetriesPerSample <= 0 {
		return errors.New("sampling: retriesPerSample must be >= 1")
	}
	return nil
}

func validateControllers(config *Configuration) error {
	controllers := config.Controllers
	if controllers.Water.MaxBursts <= 0 {
		return errors.New("controllers.water: maxBursts must be > 0")
	}
	if controllers.Dosing.MaxCycles <= 0 && controllers.Dosing.MaxDuration <= 0 {
		return errors.New("controllers.dosing: at least one of maxCycles or maxDuration must be > 0")
	}
	if controllers.Dosing.MaxCycles < 0 || controllers.Dosing.MaxDuration < 0 {
		return errors.New("controllers.dosing: maxCycles and maxDuration must not be negative")
	}
	if controllers.Ph.MaxCycles <= 0 {
		return errors.New("controllers.ph: maxCycles must be > 0")
	}
	return nil
}

func validateCalibration(config *Configuration) error {
	levels := config.Calibration.Levels
	if len(levels) < 3 {
		return errors.New("calibration: at least 3 levels are required")
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			return errors.New("calibration: levels must be strictly increasing")
		}
	}
	return nil
}
