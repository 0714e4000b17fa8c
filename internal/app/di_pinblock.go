package app

import (
	"context"
	"fmt"

	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
	pinblockHTTP "github.com/allisson/pinshield/internal/pinblock/http"
	pinblockService "github.com/allisson/pinshield/internal/pinblock/service"
	pinblockUseCase "github.com/allisson/pinshield/internal/pinblock/usecase"
)

// Codec returns the Format 0 codec in the configured decode mode.
func (c *Container) Codec() (pinblockService.Codec, error) {
	var err error
	c.codecInit.Do(func() {
		c.codec, err = c.initCodec()
		if err != nil {
			c.setInitError("codec", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("codec"); storedErr != nil {
		return nil, storedErr
	}
	return c.codec, nil
}

// PinBlockUseCase returns the PIN block use case wrapped with business metrics.
func (c *Container) PinBlockUseCase(ctx context.Context) (pinblockUseCase.PinBlockUseCase, error) {
	var err error
	c.pinBlockUseCaseInit.Do(func() {
		c.pinBlockUseCase, err = c.initPinBlockUseCase(ctx)
		if err != nil {
			c.setInitError("pinBlockUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("pinBlockUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.pinBlockUseCase, nil
}

// PinBlockHandler returns the HTTP handler for the PIN block endpoints.
func (c *Container) PinBlockHandler(ctx context.Context) (*pinblockHTTP.PinBlockHandler, error) {
	var err error
	c.pinBlockHandlerInit.Do(func() {
		c.pinBlockHandler, err = c.initPinBlockHandler(ctx)
		if err != nil {
			c.setInitError("pinBlockHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("pinBlockHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.pinBlockHandler, nil
}

func (c *Container) initCodec() (pinblockService.Codec, error) {
	mode, err := pinblockDomain.ParseDecodeMode(c.config.PinDecodeMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pin decode mode %q: %w", c.config.PinDecodeMode, err)
	}
	return pinblockService.NewISO0Codec(mode), nil
}

func (c *Container) initPinBlockUseCase(ctx context.Context) (pinblockUseCase.PinBlockUseCase, error) {
	zoneCipher, err := c.ZoneCipher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get zone cipher for pin block use case: %w", err)
	}

	keypair, err := c.TransportKeypair()
	if err != nil {
		return nil, fmt.Errorf("failed to get transport keypair for pin block use case: %w", err)
	}

	codec, err := c.Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to get codec for pin block use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for pin block use case: %w", err)
	}

	useCase := pinblockUseCase.NewPinBlockUseCase(zoneCipher, c.TransportCipher(), keypair, codec)

	return pinblockUseCase.NewPinBlockUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initPinBlockHandler(ctx context.Context) (*pinblockHTTP.PinBlockHandler, error) {
	useCase, err := c.PinBlockUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pin block use case for pin block handler: %w", err)
	}
	return pinblockHTTP.NewPinBlockHandler(useCase, c.Logger()), nil
}
