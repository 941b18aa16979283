package service

import (
	"context"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Requester performs one API call; *apiclient.Client satisfies it.
	Requester interface {
		Do(ctx context.Context, req apiclient.Request, out any) error
	}
)
