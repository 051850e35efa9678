package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrModuleInit is returned when the signer module could not be loaded
	ErrModuleInit = errors.New("module initialization failed")
	// ErrSignerRequest is returned when the signer call itself failed
	ErrSignerRequest = errors.New("OPRF generation failed")
)

// Module is the binding that performs the OPRF exchange with a signer
type Module interface {
	RequestFromSigner(ctx context.Context, value, method, signerURL string) (string, error)
}

// Loader produces the module on first use
type Loader func() (Module, error)

// ModuleFunc adapts a function to Module
type ModuleFunc func(ctx context.Context, value, method, signerURL string) (string, error)

// RequestFromSigner implements Module
func (f ModuleFunc) RequestFromSigner(ctx context.Context, value, method, signerURL string) (string, error) {
	return f(ctx, value, method, signerURL)
}

// Network owns the lazily loaded module. The loader runs at most once;
// a failed load is remembered and returned on every later call.
type Network struct {
	load Loader

	once    sync.Once
	module  Module
	initErr error
}

// NewNetwork creates a Network that loads its module with load
func NewNetwork(load Loader) *Network {
	return &Network{load: load}
}

func (n *Network) initialize() error {
	n.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				n.module = nil
				n.initErr = fmt.Errorf("%w: loader panicked: %v", ErrModuleInit, r)
				zap.L().Error("signer module loader panicked", zap.Any("panic", r))
			}
		}()
		if n.load == nil {
			n.initErr = fmt.Errorf("%w: no module loader configured", ErrModuleInit)
			return
		}
		module, err := n.load()
		if err != nil {
			n.initErr = fmt.Errorf("%w: %w", ErrModuleInit, err)
			zap.L().Error("failed to load signer module", zap.Error(err))
			return
		}
		if module == nil {
			n.initErr = fmt.Errorf("%w: module not properly initialized - request function not available", ErrModuleInit)
			return
		}
		n.module = module
		zap.L().Info("signer module initialized")
	})
	return n.initErr
}

// Ready loads the module if needed and reports whether it is usable
func (n *Network) Ready() bool {
	return n.initialize() == nil
}

// RequestFromSigner loads the module if needed and forwards the request
func (n *Network) RequestFromSigner(ctx context.Context, value, method, signerURL string) (string, error) {
	if err := n.initialize(); err != nil {
		return "", err
	}
	if n.module == nil {
		return "", fmt.Errorf("%w: module not properly initialized - request function not available", ErrModuleInit)
	}

	result, err := n.module.RequestFromSigner(ctx, value, method, signerURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSignerRequest, err)
	}
	return result, nil
}
