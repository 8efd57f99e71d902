package core

// Patch types carry partial updates. A nil field means "leave the
// stored value alone"; a set field overwrites it, including with a
// zero value. The store merges the patch over the existing record and
// refreshes UpdatedAt; ids and creation timestamps are never patchable.

// OrderPatch is a partial update for an Order.
type OrderPatch struct {
	RetailerName    *string
	OrderNumber     *string
	PurchaseDate    *Date
	ItemDescription *string
	PurchasePrice   *float64
	ShippingCost    *float64
	WarrantyPeriod  *string
	ClaimReason     *string
}

// Apply merges the patch into order.
func (p *OrderPatch) Apply(order *Order) {
	if p.RetailerName != nil {
		order.RetailerName = *p.RetailerName
	}
	if p.OrderNumber != nil {
		order.OrderNumber = *p.OrderNumber
	}
	if p.PurchaseDate != nil {
		order.PurchaseDate = *p.PurchaseDate
	}
	if p.ItemDescription != nil {
		order.ItemDescription = *p.ItemDescription
	}
	if p.PurchasePrice != nil {
		order.PurchasePrice = *p.PurchasePrice
	}
	if p.ShippingCost != nil {
		order.ShippingCost = *p.ShippingCost
	}
	if p.WarrantyPeriod != nil {
		order.WarrantyPeriod = *p.WarrantyPeriod
	}
	if p.ClaimReason != nil {
		order.ClaimReason = *p.ClaimReason
	}
}

// RefundPatch is a partial update for a Refund.
type RefundPatch struct {
	RetailerName   *string
	Amount         *float64
	Method         *string
	Status         *Status
	DeliveredDate  *Date
	ReturnDeadline *Date
	Notes          *string
}

// Apply merges the patch into refund.
func (p *RefundPatch) Apply(refund *Refund) {
	if p.RetailerName != nil {
		refund.RetailerName = *p.RetailerName
	}
	if p.Amount != nil {
		refund.Amount = *p.Amount
	}
	if p.Method != nil {
		refund.Method = *p.Method
	}
	if p.Status != nil {
		refund.Status = *p.Status
	}
	if p.DeliveredDate != nil {
		refund.DeliveredDate = *p.DeliveredDate
	}
	if p.ReturnDeadline != nil {
		refund.ReturnDeadline = *p.ReturnDeadline
	}
	if p.Notes != nil {
		refund.Notes = *p.Notes
	}
}

// WarrantyClaimPatch is a partial update for a WarrantyClaim.
type WarrantyClaimPatch struct {
	RetailerName *string
	OrderId      *ID
	ItemInfo     *string
	Method       *string
	Status       *Status
	Notes        *string
}

// Apply merges the patch into claim.
func (p *WarrantyClaimPatch) Apply(claim *WarrantyClaim) {
	if p.RetailerName != nil {
		claim.RetailerName = *p.RetailerName
	}
	if p.OrderId != nil {
		claim.OrderId = *p.OrderId
	}
	if p.ItemInfo != nil {
		claim.ItemInfo = *p.ItemInfo
	}
	if p.Method != nil {
		claim.Method = *p.Method
	}
	if p.Status != nil {
		claim.Status = *p.Status
	}
	if p.Notes != nil {
		claim.Notes = *p.Notes
	}
}

// ContactPatch is a partial update for a Contact.
type ContactPatch struct {
	Name           *string
	SocialPlatform *string
	Handle         *string
	Role           *string
	Notes          *string
}

// Apply merges the patch into contact.
func (p *ContactPatch) Apply(contact *Contact) {
	if p.Name != nil {
		contact.Name = *p.Name
	}
	if p.SocialPlatform != nil {
		contact.SocialPlatform = *p.SocialPlatform
	}
	if p.Handle != nil {
		contact.Handle = *p.Handle
	}
	if p.Role != nil {
		contact.Role = *p.Role
	}
	if p.Notes != nil {
		contact.Notes = *p.Notes
	}
}

// RetailerPatch is a partial update for a Retailer.
type RetailerPatch struct {
	Name                   *string
	PhoneNumber            *string
	Email                  *string
	Website                *string
	PreferredContactMethod *string
}

// Apply merges the patch into retailer.
func (p *RetailerPatch) Apply(retailer *Retailer) {
	if p.Name != nil {
		retailer.Name = *p.Name
	}
	if p.PhoneNumber != nil {
		retailer.PhoneNumber = *p.PhoneNumber
	}
	if p.Email != nil {
		retailer.Email = *p.Email
	}
	if p.Website != nil {
		retailer.Website = *p.Website
	}
	if p.PreferredContactMethod != nil {
		retailer.PreferredContactMethod = *p.PreferredContactMethod
	}
}
