package queue

import "time"

// Config holds environment-driven queue settings.
type Config struct {
	Capacity    int           `env:"QUEUE_CAPACITY" envDefault:"256"`   // Capacity is the task buffer size.
	Workers     int           `env:"QUEUE_WORKERS" envDefault:"4"`      // Workers is the number of concurrent workers.
	TaskTimeout time.Duration `env:"QUEUE_TASK_TIMEOUT" envDefault:"1m"` // TaskTimeout bounds a single task execution.
}
