package order

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var statuses = map[string]Status{
	string(StatusPending):   StatusPending,
	string(StatusPaid):      StatusPaid,
	string(StatusShipped):   StatusShipped,
	string(StatusDelivered): StatusDelivered,
	string(StatusCancelled): StatusCancelled,
}

// ParseStatus looks up a Status by name.
func ParseStatus(s string) (Status, bool) {
	v, ok := statuses[s]
	return v, ok
}

func (s Status) String() string { return string(s) }

// PaymentStatus tracks the payment of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var paymentStatuses = map[string]PaymentStatus{
	string(PaymentPending):   PaymentPending,
	string(PaymentCompleted): PaymentCompleted,
	string(PaymentFailed):    PaymentFailed,
	string(PaymentRefunded):  PaymentRefunded,
}

// ParsePaymentStatus looks up a PaymentStatus by name.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	v, ok := paymentStatuses[s]
	return v, ok
}

func (s PaymentStatus) String() string { return string(s) }

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

var paymentMethods = map[string]PaymentMethod{
	string(PaymentCard):           PaymentCard,
	string(PaymentPayPal):         PaymentPayPal,
	string(PaymentBankTransfer):   PaymentBankTransfer,
	string(PaymentCashOnDelivery): PaymentCashOnDelivery,
}

// ParsePaymentMethod looks up a PaymentMethod by name.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	v, ok := paymentMethods[s]
	return v, ok
}

func (m PaymentMethod) String() string { return string(m) }
