// Package carrier implements the carrier gateway. The stub implementation
// issues deterministic tracking numbers and label URLs without calling any
// external API; production deployments swap in a real carrier client.
package carrier

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// StubCarrierService generates labels locally. The tracking number is
// derived from the order ID and carrier code, so retrying a label request
// for the same order yields the same tracking number.
type StubCarrierService struct {
	labelBaseURL string
}

// NewStubCarrierService creates a stub carrier gateway. Labels link under
// the given base URL.
func NewStubCarrierService(labelBaseURL string) *StubCarrierService {
	return &StubCarrierService{
		labelBaseURL: strings.TrimSuffix(labelBaseURL, "/"),
	}
}

// GenerateLabel issues a tracking number and label document reference.
func (s *StubCarrierService) GenerateLabel(
	_ context.Context,
	request ports.ShippingLabelRequest,
) (ports.ShippingLabel, error) {
	if request.CarrierCode == "" {
		return ports.ShippingLabel{}, errs.NewValueIsRequiredError("carrier code")
	}
	if err := request.OrderID.Validate(); err != nil {
		return ports.ShippingLabel{}, err
	}

	digest := fnv.New64a()
	digest.Write([]byte(request.OrderID.String()))
	digest.Write([]byte(request.CarrierCode))
	digest.Write([]byte(request.ServiceLevel))

	trackingNumber := fmt.Sprintf("%s-%012d", strings.ToUpper(request.CarrierCode), digest.Sum64()%1e12)
	labelURL := fmt.Sprintf("%s/%s.pdf", s.labelBaseURL, trackingNumber)

	return ports.ShippingLabel{
		TrackingNumber: trackingNumber,
		LabelURL:       labelURL,
	}, nil
}
