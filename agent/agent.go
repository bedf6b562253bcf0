// Package agent drives a NEAT population through episodic trials of a
// side-scrolling game. The host calls AdvanceEpisode once per frame, applies
// CurrentInputs to the game controller and calls AdvancePopulation once the
// episode has ended.
package agent

import (
	"errors"
	"fmt"

	"github.com/baldhumanity/neat-mario/episode"
	"github.com/baldhumanity/neat-mario/game"
	"github.com/baldhumanity/neat-mario/neat"
	"github.com/baldhumanity/neat-mario/neat/nn"
)

// NumOutputs is the number of controller outputs: steer right and action.
const NumOutputs = 2

// ActivationThreshold is the output activation above which a button is pressed.
const ActivationThreshold = 0.5

// ErrEpisodeInProgress is returned by AdvancePopulation while the current
// episode is still being played.
var ErrEpisodeInProgress = errors.New("episode still in progress")

// Inputs are the controller buttons the current genome presses.
type Inputs struct {
	SteerRight bool
	Action     bool
}

// FitnessReport describes the last completed trial.
type FitnessReport struct {
	Episode    int             // Number of completed trials, counting this one.
	Generation int             // Generation the genome belonged to.
	Cursor     neat.Cursor     // Position of the genome in the population.
	SpeciesID  int             // Species of the genome.
	Outcome    episode.Outcome // How the trial ended.
	RawFitness float64         // Episode fitness before fitness sharing.
	Fitness    float64         // Fitness stored on the genome.
	MaxFitness float64         // Global max fitness as of the last generation transition.
	Ticks      int             // Frames played.
}

// EpisodeReporter receives a report after every completed trial.
type EpisodeReporter interface {
	EpisodeEnd(report FitnessReport)
}

// Agent couples a population with the episode of the genome on trial.
// It is not safe for concurrent use.
type Agent struct {
	Population *neat.Population

	opts      episode.Options
	clock     episode.Clock
	episode   *episode.Episode
	network   *nn.FeedForwardNetwork
	report    FitnessReport
	episodes  int
	reporters []EpisodeReporter
}

// New creates an agent with a freshly seeded population. The network inputs
// are the flattened tile window.
func New(config *neat.Config, rng neat.Rand, clock episode.Clock) (*Agent, error) {
	pop, err := neat.NewPopulation(config, game.InputSize, NumOutputs, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create population: %w", err)
	}
	a := &Agent{
		Population: pop,
		opts: episode.Options{
			StuckTimeout:  config.Episode.StuckTimeout,
			FinishTimeout: config.Episode.FinishTimeout,
		},
		clock: clock,
	}
	a.startEpisode()
	return a, nil
}

// AddReporter registers a reporter called after every completed trial.
func (a *Agent) AddReporter(r EpisodeReporter) {
	a.reporters = append(a.reporters, r)
}

func (a *Agent) startEpisode() {
	a.episode = episode.New(a.opts, a.clock)
	a.network = nil
}

// AdvanceEpisode feeds one frame into the current episode.
func (a *Agent) AdvanceEpisode(snap game.Snapshot) {
	a.episode.Advance(snap)
}

// EpisodeOutcome returns the state of the current episode.
func (a *Agent) EpisodeOutcome() episode.Outcome {
	return a.episode.Outcome()
}

// CurrentInputs evaluates the current genome against the current tile window.
func (a *Agent) CurrentInputs() (Inputs, error) {
	if a.network == nil {
		g, err := a.Population.Current()
		if err != nil {
			return Inputs{}, err
		}
		a.network = nn.CreateFeedForwardNetwork(g)
	}
	window := a.episode.Window()
	outputs, err := a.network.Activate(window.Inputs())
	if err != nil {
		return Inputs{}, err
	}
	return Inputs{
		SteerRight: outputs[0] > ActivationThreshold,
		Action:     outputs[1] > ActivationThreshold,
	}, nil
}

// AdvancePopulation records the fitness of the finished episode, moves to the
// next genome and starts a new episode. When the cursor wraps, a generation
// transition runs first.
func (a *Agent) AdvancePopulation() error {
	outcome := a.episode.Outcome()
	if outcome == episode.Playing {
		return ErrEpisodeInProgress
	}

	sp, err := a.Population.CurrentSpecies()
	if err != nil {
		return err
	}
	raw := a.episode.Fitness()
	cursor := a.Population.Cursor()
	fitness, err := a.Population.Record(raw)
	if err != nil {
		return err
	}

	a.episodes++
	a.report = FitnessReport{
		Episode:    a.episodes,
		Generation: a.Population.Generation,
		Cursor:     cursor,
		SpeciesID:  sp.ID,
		Outcome:    outcome,
		RawFitness: raw,
		Fitness:    fitness,
		MaxFitness: a.Population.MaxFitness,
		Ticks:      a.episode.Ticks(),
	}
	for _, r := range a.reporters {
		r.EpisodeEnd(a.report)
	}

	if _, err := a.Population.Advance(); err != nil {
		return fmt.Errorf("failed to advance population: %w", err)
	}
	a.startEpisode()
	return nil
}

// FitnessReport returns the report of the last completed trial.
func (a *Agent) FitnessReport() FitnessReport {
	return a.report
}

// TileWindow returns the tile window of the current episode.
func (a *Agent) TileWindow() game.TileWindow {
	return a.episode.Window()
}
