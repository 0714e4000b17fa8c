package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	cryptoService "github.com/allisson/pinshield/internal/crypto/service"
)

// KMSService returns the KMS service used to unwrap a KMS-protected zone key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// ZoneCipherManager returns the zone cipher factory.
func (c *Container) ZoneCipherManager() cryptoService.ZoneCipherManager {
	c.zoneCipherManagerInit.Do(func() {
		c.zoneCipherManager = cryptoService.NewZoneCipherManager()
	})
	return c.zoneCipherManager
}

// TransportCipher returns the RSA-OAEP transport cipher.
func (c *Container) TransportCipher() cryptoService.TransportCipher {
	c.transportCipherInit.Do(func() {
		c.transportCipher = cryptoService.NewRSAOAEPTransportCipher()
	})
	return c.transportCipher
}

// ZoneKey returns the zone key loaded from configuration or unwrapped through the KMS.
func (c *Container) ZoneKey(ctx context.Context) (*cryptoDomain.ZoneKey, error) {
	var err error
	c.zoneKeyInit.Do(func() {
		c.zoneKey, err = c.initZoneKey(ctx)
		if err != nil {
			c.setInitError("zoneKey", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("zoneKey"); storedErr != nil {
		return nil, storedErr
	}
	return c.zoneKey, nil
}

// ZoneCipher returns the cipher matching the zone key algorithm.
func (c *Container) ZoneCipher(ctx context.Context) (cryptoService.ZoneCipher, error) {
	var err error
	c.zoneCipherInit.Do(func() {
		c.zoneCipher, err = c.initZoneCipher(ctx)
		if err != nil {
			c.setInitError("zoneCipher", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("zoneCipher"); storedErr != nil {
		return nil, storedErr
	}
	return c.zoneCipher, nil
}

// TransportKeypair returns the ephemeral transport keypair generated for this process.
func (c *Container) TransportKeypair() (*cryptoDomain.TransportKeypair, error) {
	var err error
	c.transportKeypairInit.Do(func() {
		c.transportKeypair, err = c.initTransportKeypair()
		if err != nil {
			c.setInitError("transportKeypair", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("transportKeypair"); storedErr != nil {
		return nil, storedErr
	}
	return c.transportKeypair, nil
}

func (c *Container) initZoneKey(ctx context.Context) (*cryptoDomain.ZoneKey, error) {
	zoneKey, err := cryptoDomain.LoadZoneKey(ctx, c.config, c.KMSService(), c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to load zone key: %w", err)
	}
	return zoneKey, nil
}

func (c *Container) initZoneCipher(ctx context.Context) (cryptoService.ZoneCipher, error) {
	zoneKey, err := c.ZoneKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get zone key for zone cipher: %w", err)
	}

	zoneCipher, err := c.ZoneCipherManager().CreateCipher(zoneKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create zone cipher: %w", err)
	}

	kcv, err := cryptoService.KeyCheckValue(zoneCipher)
	if err != nil {
		return nil, fmt.Errorf("failed to compute key check value: %w", err)
	}

	c.Logger().Info("zone cipher ready",
		slog.String("algorithm", string(zoneCipher.Algorithm())),
		slog.String("kcv", kcv),
	)

	return zoneCipher, nil
}

func (c *Container) initTransportKeypair() (*cryptoDomain.TransportKeypair, error) {
	keypair, err := cryptoDomain.GenerateTransportKeypair(c.config.TransportKeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate transport keypair: %w", err)
	}

	c.Logger().Info("transport keypair generated", slog.Int("bits", keypair.Bits()))

	return keypair, nil
}
