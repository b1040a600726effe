// Package qtm is the glue between the transformation engine and the QTM
// backend: authentication, workflow phase discovery, and submission of
// creation payloads.
//
// The engine itself (package clonecoco) performs no network I/O; everything
// that talks to the backend lives here. The split keeps the engine a pure
// function of its inputs while this package owns the external contract:
// obtaining a bearer token, listing phases and their collection
// configurations, checking which phases are eligible (no configuration
// attached yet), and submitting the create request.
//
// # Configuration
//
// Environment selection and secrets follow the tool's dotenv workflow:
// QTM_ENVIRONMENT picks the backend (qa by default), AUTH_TOKEN carries the
// bearer token, PROJECT_ID the default project. Base URLs per environment can
// be overridden with a YAML file; see LoadEnvironments.
//
// # Usage
//
//	cfg, err := qtm.LoadConfig()
//	client, err := qtm.NewClient(cfg.BaseURL, qtm.WithToken(cfg.AuthToken))
//
//	phases, err := client.PhasesWithConfigurations(ctx, cfg.ProjectID)
//	for _, p := range phases {
//	    if p.Eligible() { ... }
//	}
//
//	created, err := client.CreateCollectionConfiguration(ctx, result.Payload)
package qtm
