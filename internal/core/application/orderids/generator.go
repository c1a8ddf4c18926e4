// Package orderids composes human-facing order identifiers from geography,
// product type and the global sequence.
package orderids

import (
	"context"
	"fmt"
	"strings"

	"custody/internal/core/domain/model/orderid"
	"custody/internal/core/domain/services"
	"custody/internal/pkg/errs"

	"go.uber.org/zap"
)

// SequenceAllocator issues the next global sequence number.
type SequenceAllocator interface {
	Next(ctx context.Context) (int64, error)
}

// Request describes the intake an identifier is generated for. Brand and
// StateName are optional; a non-empty StateName overrides the region
// resolved from the postal code.
type Request struct {
	PostalCode string
	Category   string
	Brand      string
	StateName  string
}

type Generator struct {
	resolver  *services.GeoCodeResolver
	allocator SequenceAllocator
	logger    *zap.Logger
}

func NewGenerator(resolver *services.GeoCodeResolver, allocator SequenceAllocator, logger *zap.Logger) (*Generator, error) {
	if resolver == nil {
		return nil, errs.NewValueIsRequiredError("geo code resolver")
	}
	if allocator == nil {
		return nil, errs.NewValueIsRequiredError("sequence allocator")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		resolver:  resolver,
		allocator: allocator,
		logger:    logger.With(zap.String("component", "order_id_generator")),
	}, nil
}

// Generate allocates a sequence number and returns the issued identifier.
// Resolution never fails; only allocation can.
func (g *Generator) Generate(ctx context.Context, req Request) (orderid.OrderID, error) {
	geo, product := g.resolve(req)

	seq, err := g.allocator.Next(ctx)
	if err != nil {
		return orderid.OrderID{}, fmt.Errorf("allocate order sequence: %w", err)
	}

	id, err := orderid.New(geo.Region, geo.SubRegion, product, seq)
	if err != nil {
		return orderid.OrderID{}, err
	}
	g.logger.Info("order id issued",
		zap.String("order_id", id.String()),
		zap.String("postal_code", req.PostalCode),
		zap.Int64("sequence", seq))
	return id, nil
}

// Preview resolves the same parts as Generate without touching the sequence.
// The result carries a placeholder sequence and must never be persisted.
func (g *Generator) Preview(req Request) (orderid.OrderID, error) {
	geo, product := g.resolve(req)
	return orderid.NewPreview(geo.Region, geo.SubRegion, product)
}

func (g *Generator) resolve(req Request) (services.GeoCode, string) {
	geo := g.resolver.Resolve(req.PostalCode)

	if strings.TrimSpace(req.StateName) != "" {
		region, known := g.resolver.RegionForState(req.StateName)
		if !known {
			g.logger.Debug("unknown state name, using fallback region", zap.String("state", req.StateName))
		}
		// The postal sub-region only makes sense inside its own state.
		if region != geo.Region {
			geo = services.GeoCode{Region: region, SubRegion: services.FallbackSubRegion}
		}
	}

	return geo, g.resolver.CategoryCode(req.Category, req.Brand)
}
