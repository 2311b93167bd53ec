package observability

// Metric names shared between registration in main and the components
// that record them.
const (
	MUsecaseRequests     = "usecase_requests_total"
	MUsecaseDuration     = "usecase_duration_seconds"
	MHTTPRequests        = "http_requests_total"
	MHTTPRequestDuration = "http_request_duration_seconds"
	MProductsSoldOut     = "products_sold_out_total"
	MOrderTotal          = "order_total_amount"
)
