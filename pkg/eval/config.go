package eval

import "time"

// Config keeps the tunables of an Evaler. The yaml tags are the keys of the
// configuration file read by pkg/shell.
type Config struct {
	// Bounds of ordinary PEEK and POKE addresses. Reserved addresses such as
	// the zero page and the I/O page are always accessible.
	MemoryLow  int `yaml:"memory_low"`
	MemoryHigh int `yaml:"memory_high"`
	// Pause after every statement.
	StatementDelay time.Duration `yaml:"statement_delay"`
	// Longest time WAIT polls before giving up; zero means forever.
	WaitTimeout time.Duration `yaml:"wait_timeout"`
	// Whether graphics statements are allowed.
	Graphics bool `yaml:"graphics"`
	// Whether INVERSE, FLASH and HOME emit terminal escape sequences.
	ANSI bool `yaml:"ansi"`
	// Seed of the random-number generator; zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the Config used when none is given.
func DefaultConfig() Config {
	return Config{
		MemoryLow:  0,
		MemoryHigh: 0xFFFF,
		Graphics:   true,
	}
}
