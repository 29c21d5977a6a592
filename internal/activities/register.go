package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ResolveActivity)
	w.RegisterActivity(a.SaveSolutionActivity)
	w.RegisterActivity(a.ListDocumentsActivity)
	w.RegisterActivity(a.ValidateExampleActivity)
	w.RegisterActivity(a.ReloadCorpusActivity)
	w.RegisterActivity(a.WriteIngestSummaryActivity)
}
