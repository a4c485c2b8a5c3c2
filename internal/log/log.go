// Package log adapts zerolog to the registry and harness.
package log

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edwinsyarief/physbench"
)

// Loggable is anything that can describe its archetypes, such as a
// *physbench.Registry.
type Loggable interface {
	Archetypes() []physbench.ArchetypeInfo
	Len() int
}

// Logger is a zerolog logger that knows how to describe registries.
type Logger struct {
	*zerolog.Logger
}

// New returns a Logger writing to w. A console writer is used unless json is
// set.
func New(w io.Writer, level zerolog.Level, json bool) Logger {
	if !json {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return Logger{&zl}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	zl := zerolog.Nop()
	return Logger{&zl}
}

func (_ Logger) loadArchetypeIntoArray(info physbench.ArchetypeInfo, arr *zerolog.Array) *zerolog.Array {
	dict := zerolog.Dict().
		Str("components", strings.Join(info.Components, "+")).
		Int("entities", info.Entities)
	return arr.Dict(dict)
}

// LogRegistry logs the entity count and archetype table of target.
func (l Logger) LogRegistry(target Loggable, level zerolog.Level) {
	infos := target.Archetypes()
	arr := zerolog.Arr()
	for _, info := range infos {
		arr = l.loadArchetypeIntoArray(info, arr)
	}
	l.WithLevel(level).
		Int("total_entities", target.Len()).
		Int("total_archetypes", len(infos)).
		Array("archetypes", arr).
		Msg("registry")
}

// ScenarioLogger creates a sub logger with the entry {"scenario": name}.
func (l Logger) ScenarioLogger(name string) Logger {
	zl := l.Logger.With().Str("scenario", name).Logger()
	return Logger{&zl}
}
