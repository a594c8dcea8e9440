package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/search"
)

// Config is read from key=value command line arguments, eg
// `depth=4 perspective=white opponent=engine opponentDepth=2`.
type Config struct {
	Depth           int    `validate:"min=1,max=8"`
	Perspective     string `validate:"oneof=white black"`
	Opponent        string `validate:"oneof=random engine human uci"`
	OpponentDepth   int    `validate:"min=1,max=8"`
	OpponentPath    string `validate:"required_if=Opponent uci"`
	Fen             string `validate:"required"`
	Seed            uint64
	Pruning         bool
	DebugSearchTree bool
	MaxPlies        int    `validate:"min=1"`
	Games           int    `validate:"min=1"`
	Log             string `validate:"oneof=trace debug info warn error silent"`
	Profile         bool
}

var AllOptions = []string{
	"depth=<1-8>",
	"perspective=<white|black>",
	"opponent=<random|engine|human|uci>",
	"opponentDepth=<1-8>",
	"opponentPath=<path to a uci engine>",
	"fen=<fen>",
	"seed=<uint>",
	"pruning=<true|false>",
	"debugSearchTree",
	"maxPlies=<n>",
	"games=<n>",
	"log=<trace|debug|info|warn|error|silent>",
	"profile",
}

func Default() Config {
	return Config{
		Depth:         3,
		Perspective:   "black",
		Opponent:      "random",
		OpponentDepth: 2,
		Fen:           game.StartFen,
		Seed:          1,
		Pruning:       true,
		MaxPlies:      400,
		Games:         1,
		Log:           "info",
	}
}

var validate = validator.New()

func parseBool(key string, value string) (bool, Error) {
	if value == "" {
		return true, NilError
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false, Join(Errorf("invalid value for %v: %q", key, value), Wrap(err))
	}
	return result, NilError
}

func parseInt(key string, value string) (int, Error) {
	result, err := ParseInt(value)
	if !IsNil(err) {
		return 0, Join(Errorf("invalid value for %v: %q", key, value), err)
	}
	return result, NilError
}

func FromArgs(args ...string) (Config, Error) {
	config := Default()

	for _, arg := range args {
		key, value, _ := strings.Cut(arg, "=")

		var err Error
		switch key {
		case "depth":
			config.Depth, err = parseInt(key, value)
		case "perspective":
			config.Perspective = value
		case "opponent":
			config.Opponent = value
		case "opponentDepth":
			config.OpponentDepth, err = parseInt(key, value)
		case "opponentPath":
			config.OpponentPath = value
		case "fen":
			config.Fen = value
		case "seed":
			var seed uint64
			seed, err = WrapReturn(strconv.ParseUint(value, 10, 64))
			config.Seed = seed
		case "pruning":
			config.Pruning, err = parseBool(key, value)
		case "debugSearchTree":
			config.DebugSearchTree, err = parseBool(key, value)
		case "maxPlies":
			config.MaxPlies, err = parseInt(key, value)
		case "games":
			config.Games, err = parseInt(key, value)
		case "log":
			config.Log = value
		case "profile":
			config.Profile, err = parseBool(key, value)
		default:
			return config, Errorf("unknown option: %s", arg)
		}
		if !IsNil(err) {
			return config, err
		}
	}

	return config, config.Validate()
}

func (c Config) Validate() Error {
	errs := validate.Struct(c)
	if errs == nil {
		return NilError
	}

	validationErrors, ok := errs.(validator.ValidationErrors)
	if !ok {
		return Wrap(errs)
	}

	details := []string{}
	for _, err := range validationErrors {
		switch err.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", err.Field()))
		case "required_if":
			details = append(details, fmt.Sprintf("%s is required when %s", err.Field(), err.Param()))
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param()))
		case "min":
			details = append(details, fmt.Sprintf("%s must be at least %s", err.Field(), err.Param()))
		case "max":
			details = append(details, fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
		default:
			details = append(details, fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return Errorf("invalid config: %s", strings.Join(details, "; "))
}

func (c Config) PerspectivePlayer() Player {
	player, err := PlayerFromString(c.Perspective)
	if !IsNil(err) {
		panic(err)
	}
	return player
}

func (c Config) Logger() (Logger, Error) {
	return LoggerForLevel(c.Log)
}

// SearchOptions builds the searcher options for the configured bot. The
// debug tree is returned so the caller can print it after a search.
func (c Config) SearchOptions(logger Logger) ([]search.SearchOption, *search.DebugSearchTree) {
	options := []search.SearchOption{search.WithLogger(logger)}
	if !c.Pruning {
		options = append(options, search.WithoutPruning())
	}
	var tree *search.DebugSearchTree
	if c.DebugSearchTree {
		tree = search.NewDebugSearchTree()
		options = append(options, search.WithDebugSearchTree(tree))
	}
	return options, tree
}
