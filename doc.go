// Package neat is the root of a NEAT (NeuroEvolution of Augmenting Topologies)
// trainer for side-scrolling game controllers.
//
// Genomes carry historical markings (innovation numbers) so crossover can
// align genes of different topologies. The population is split into species
// by compatibility distance. After every genome has played one episode, a
// generation transition culls, prunes stale and weak species, breeds within
// and between species and mutates the pool.
//
// Packages:
//
//	neat        genomes, genetic operators, speciation and the population
//	neat/nn     the feed-forward evaluator
//	game        world snapshots and the 13x13 tile window the networks see
//	episode     the per-genome trial state machine and fitness
//	agent       the facade the game loop drives
//	telemetry   CSV/YAML run output and the websocket dashboard
//
// Basic usage:
//
//	config, err := neat.LoadConfig("config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	rng, _ := neat.NewRand(0)
//	ai, err := agent.New(config, rng, episode.SystemClock)
//	if err != nil {
//		log.Fatalf("Error creating agent: %v", err)
//	}
//
//	for {
//		switch ai.EpisodeOutcome() {
//		case episode.Stuck, episode.Dead:
//			resetGame()
//			if err := ai.AdvancePopulation(); err != nil {
//				log.Fatal(err)
//			}
//			continue
//		case episode.Succeeded:
//			return
//		}
//		ai.AdvanceEpisode(readSnapshot())
//		inputs, err := ai.CurrentInputs()
//		if err != nil {
//			log.Fatal(err)
//		}
//		pressButtons(inputs.SteerRight, inputs.Action)
//	}
package neat
