package httpapi

import "github.com/stockbook-app/stockbook/internal/stats"

type dayStatResponse struct {
	Day          string `json:"day"`
	PurchaseQty  int64  `json:"purchaseQty"`
	SaleQty      int64  `json:"saleQty"`
	InboundQty   int64  `json:"inboundQty"`
	PurchaseUnit *int64 `json:"purchaseUnit,omitempty"`
	SaleUnit     *int64 `json:"saleUnit,omitempty"`
}

type summaryResponse struct {
	Days []dayStatResponse `json:"days"`

	PurchaseQty int64 `json:"purchaseQty"`
	SaleQty     int64 `json:"saleQty"`
	InboundQty  int64 `json:"inboundQty"`

	AvgPurchaseUnit *int64 `json:"avgPurchaseUnit,omitempty"`
	MinPurchaseUnit *int64 `json:"minPurchaseUnit,omitempty"`
	MaxPurchaseUnit *int64 `json:"maxPurchaseUnit,omitempty"`
	AvgSaleUnit     *int64 `json:"avgSaleUnit,omitempty"`
	MinSaleUnit     *int64 `json:"minSaleUnit,omitempty"`
	MaxSaleUnit     *int64 `json:"maxSaleUnit,omitempty"`

	MissingPurchaseQty int64 `json:"missingPurchaseQty"`
	MissingSaleQty     int64 `json:"missingSaleQty"`
}

func toSummaryResponse(s *stats.Summary) summaryResponse {
	days := make([]dayStatResponse, 0, len(s.Days))
	for _, d := range s.Days {
		days = append(days, dayStatResponse{
			Day:          d.Day,
			PurchaseQty:  d.PurchaseQty,
			SaleQty:      d.SaleQty,
			InboundQty:   d.InboundQty,
			PurchaseUnit: d.PurchaseUnit,
			SaleUnit:     d.SaleUnit,
		})
	}
	return summaryResponse{
		Days:               days,
		PurchaseQty:        s.PurchaseQty,
		SaleQty:            s.SaleQty,
		InboundQty:         s.InboundQty,
		AvgPurchaseUnit:    s.AvgPurchaseUnit,
		MinPurchaseUnit:    s.MinPurchaseUnit,
		MaxPurchaseUnit:    s.MaxPurchaseUnit,
		AvgSaleUnit:        s.AvgSaleUnit,
		MinSaleUnit:        s.MinSaleUnit,
		MaxSaleUnit:        s.MaxSaleUnit,
		MissingPurchaseQty: s.MissingPurchaseQty,
		MissingSaleQty:     s.MissingSaleQty,
	}
}
