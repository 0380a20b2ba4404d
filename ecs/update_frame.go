package ecs

// UpdateFrame is handed to every system during one tick.
type UpdateFrame struct {
	// DeltaTime is the measured wall-clock delta in seconds.
	DeltaTime float64
	// Time is the wall-clock time of the tick in milliseconds.
	Time     float64
	Commands *Commands
	Storage  *Storage
}

// Clock is the tick state kept by the Scheduler as a singleton.
type Clock struct {
	Ticks   int64
	Elapsed float64
	Delta   float64
	Time    float64
}
