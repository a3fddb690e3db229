package platform

import (
	"context"
	"log/slog"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/core"
)

// New opens the directory at path and returns a ready service.
//
//	svc, err := scribe.New("./files", scribe.WithSigning("on,sha512"))
func New(path string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := open(path, o)
	if err != nil {
		return nil, err
	}

	service := core.NewService(store, o.logger)
	if err := service.SetDefaultMode(o.defaultMode); err != nil {
		return nil, err
	}
	return service, nil
}

// Init opens the directory at path and returns the bare store.
func Init(path string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return open(path, o)
}

func open(path string, o *options) (core.Store, error) {
	// 1. Injected store wins.
	if o.store != nil {
		return o.store, nil
	}

	// 2. Integrity strategy.
	integrity, err := fs.FromSetting(o.signing)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// 3. Filesystem adapter.
	store := fs.NewStore(fs.Config{
		Path:          path,
		MustExist:     o.mustExist,
		Integrity:     integrity,
		Logger:        logger.With("component", "fs"),
		NameGenerator: o.nameGenerator,
		NameAttempts:  o.nameAttempts,
	})
	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}

	logger.Debug("store opened", "path", store.Directory(), "signing", store.Signing())
	return store, nil
}
