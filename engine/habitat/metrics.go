package habitat

// Metrics summarizes habitable volume for the metrics bar.
type Metrics struct {
	TotalVolume   float64
	ModuleVolume  float64
	VolumePerCrew float64
	UsedFraction  float64
	Valid         bool
}

// ComputeMetrics derives volume metrics from the configuration and the volumes of
// the placed modules.
//
// Parameters:
//   - cfg: the habitat configuration
//   - moduleVolumes: volume of each placed module in m³
//
// Returns:
//   - Metrics: the computed metrics
func ComputeMetrics(cfg Config, moduleVolumes ...float64) Metrics {
	m := Metrics{TotalVolume: cfg.Volume()}
	for _, v := range moduleVolumes {
		m.ModuleVolume += v
	}
	if cfg.CrewSize > 0 {
		m.VolumePerCrew = m.TotalVolume / float64(cfg.CrewSize)
	}
	if m.TotalVolume > 0 {
		m.UsedFraction = m.ModuleVolume / m.TotalVolume
	}
	m.Valid = m.VolumePerCrew >= MinVolumePerCrew
	return m
}
