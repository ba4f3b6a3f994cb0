package config

import "time"

const (
	// Radar display
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 4    // Number of concentric rings
	SweepSpeedRPM = 24   // Sweep rotations per minute, close to a real antenna
	SweepTrailDeg = 60.0 // Sweep trail angle in degrees
	TargetFPS     = 30   // Target frames per second

	// Panel
	TickInterval = time.Second // How often auto-hide is evaluated
	SmallStep    = 1           // +/- adjustment
	LargeStep    = 10          // PgUp/PgDn adjustment
	RangeStep    = 100         // Meters per range step
	ZoneStep     = 50.0        // Meters per guard zone range step
	BearingStep  = 5.0         // Degrees per guard zone bearing step
	HistorySize  = 32          // Commands kept for the status bar

	// Targets
	TargetTimeout   = 10 * time.Second // Drop targets not reported for this long
	EvictInterval   = 2 * time.Second  // How often stale targets are dropped
	TargetSmoothing = 0.5              // EMA factor for reported target range
	DefaultScale    = 1852.0           // Scope scale in meters until range is known

	// App
	AppName    = "RADAR-PANEL"
	AppVersion = "1.0"
)
