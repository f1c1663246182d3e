// internal/argo/interface.go
package argo

import (
	"context"

	"github.com/argoview/backend-go/internal/models"
)

// Source is one remote repository of ARGO float data
type Source interface {
	Name() string
	Fetch(ctx context.Context, params models.QueryParams) (*models.SourceData, error)
}

type DataFetcher interface {
	FetchArgoData(ctx context.Context, params models.QueryParams) (*models.CombinedResult, error)
}
