package domain

import "time"

type PhotoPhase string

const (
	PhotoPhasePrep   PhotoPhase = "prep"
	PhotoPhasePickup PhotoPhase = "pickup"
	PhotoPhaseReturn PhotoPhase = "return"
)

func (p PhotoPhase) IsValid() bool {
	switch p {
	case PhotoPhasePrep, PhotoPhasePickup, PhotoPhaseReturn:
		return true
	}
	return false
}

type PhotoType string

const (
	PhotoTypeFront         PhotoType = "front"
	PhotoTypeRear          PhotoType = "rear"
	PhotoTypeDriverSide    PhotoType = "driver_side"
	PhotoTypePassengerSide PhotoType = "passenger_side"
	PhotoTypeInterior      PhotoType = "interior"
	PhotoTypeOdometer      PhotoType = "odometer"
	PhotoTypeFuelGauge     PhotoType = "fuel_gauge"
)

// AllPhotoTypes lists every tag the photo store accepts.
var AllPhotoTypes = []PhotoType{
	PhotoTypeFront,
	PhotoTypeRear,
	PhotoTypeDriverSide,
	PhotoTypePassengerSide,
	PhotoTypeInterior,
	PhotoTypeOdometer,
	PhotoTypeFuelGauge,
}

func (t PhotoType) IsValid() bool {
	for _, known := range AllPhotoTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Photo struct {
	ID          int32      `json:"id"`
	BookingID   int32      `json:"booking_id"`
	Phase       PhotoPhase `json:"phase"`
	Type        PhotoType  `json:"type"`
	StorageKey  string     `json:"storage_key"`
	ContentType string     `json:"content_type"`
	CreatedBy   int32      `json:"created_by"`
	CreatedOn   time.Time  `json:"created_on"`
}

type PrepItem struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// VehiclePrep is the prep checklist plus the ready-line readings taken before a
// vehicle leaves the depot.
type VehiclePrep struct {
	BookingID        int32      `json:"booking_id"`
	Items            []PrepItem `json:"items"`
	FuelLevelEighths *int32     `json:"fuel_level_eighths,omitempty"`
	OdometerMiles    *int32     `json:"odometer_miles,omitempty"`
	PricingLocked    bool       `json:"pricing_locked"`
	UpdatedOn        time.Time  `json:"updated_on"`
}

// AllComplete reports whether the checklist has items and every one is checked.
func (p *VehiclePrep) AllComplete() bool {
	if p == nil || len(p.Items) == 0 {
		return false
	}
	for _, item := range p.Items {
		if !item.Checked {
			return false
		}
	}
	return true
}

// CheckedCount returns the number of checked items.
func (p *VehiclePrep) CheckedCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, item := range p.Items {
		if item.Checked {
			n++
		}
	}
	return n
}

type DispatchStatus string

const (
	DispatchStatusUnassigned DispatchStatus = "unassigned"
	DispatchStatusAssigned   DispatchStatus = "assigned"
	DispatchStatusEnRoute    DispatchStatus = "en_route"
	DispatchStatusDelivered  DispatchStatus = "delivered"
	DispatchStatusCancelled  DispatchStatus = "cancelled"
)

// DeliveryTask tracks the driver assignment for a delivery booking.
type DeliveryTask struct {
	BookingID    int32          `json:"booking_id"`
	DriverID     *int32         `json:"driver_id,omitempty"`
	Status       DispatchStatus `json:"status"`
	DispatchedAt *time.Time     `json:"dispatched_at,omitempty"`
}

// IsDispatched reports whether the vehicle has left with the driver.
func (d *DeliveryTask) IsDispatched() bool {
	if d == nil {
		return false
	}
	return d.Status == DispatchStatusEnRoute || d.Status == DispatchStatusDelivered
}
