package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	storeports "github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/observability/service"

// Service decorates the storefront service with tracing, logging, and metrics.
type Service struct {
	inner   storeports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core storefront service.
func New(inner storeports.Service, opts ...Option) storeports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.CreateProduct",
		trace.WithAttributes(attribute.String("product.category", input.Category), attribute.Int("product.initial_stock", input.InitialStock)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.category", input.Category), slog.Float64("product.price", input.Price))
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.category", input.Category))
	}
	span.SetAttributes(attribute.String("product.id", result.ID.String()))
	s.metrics.recordProductCreated(ctx, result.Category)
	s.logInfo(ctx, "product created", slog.String("product.id", result.ID.String()), slog.Int("product.stock", result.Stock))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, input types.ProductIdentifier) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.GetProduct", trace.WithAttributes(productAttr(input.ID)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", input.ID.String()))
	}
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) SetSale(ctx context.Context, input types.SetSaleInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.SetSale",
		trace.WithAttributes(productAttr(input.ID), attribute.Float64("product.sale", input.Sale)))
	defer span.End()

	s.logInfo(ctx, "setting sale", slog.String("product.id", input.ID.String()), slog.Float64("product.sale", input.Sale))
	result, err := s.inner.SetSale(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set sale", slog.String("product.id", input.ID.String()))
	}
	return result, nil
}

func (s *Service) RemoveSale(ctx context.Context, input types.ProductIdentifier) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.RemoveSale", trace.WithAttributes(productAttr(input.ID)))
	defer span.End()

	s.logInfo(ctx, "removing sale", slog.String("product.id", input.ID.String()))
	result, err := s.inner.RemoveSale(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove sale", slog.String("product.id", input.ID.String()))
	}
	return result, nil
}

func (s *Service) Restock(ctx context.Context, input types.RestockInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.Restock",
		trace.WithAttributes(productAttr(input.ID), attribute.Int("stock.amount", input.Amount)))
	defer span.End()

	s.logInfo(ctx, "restocking product", slog.String("product.id", input.ID.String()), slog.Int("stock.amount", input.Amount))
	result, err := s.inner.Restock(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restock product", slog.String("product.id", input.ID.String()))
	}
	s.metrics.recordRestocked(ctx, input.Amount)
	s.logInfo(ctx, "product restocked", slog.String("product.id", result.ID.String()), slog.Int("product.stock", result.Stock))
	return result, nil
}

func (s *Service) RegisterCustomer(ctx context.Context) (*types.CustomerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.RegisterCustomer")
	defer span.End()

	result, err := s.inner.RegisterCustomer(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register customer")
	}
	span.SetAttributes(customerAttr(result.ID))
	s.logInfo(ctx, "customer registered", slog.String("customer.id", result.ID.String()))
	return result, nil
}

func (s *Service) GetCustomer(ctx context.Context, input types.CustomerIdentifier) (*types.CustomerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.GetCustomer", trace.WithAttributes(customerAttr(input.ID)))
	defer span.End()

	result, err := s.inner.GetCustomer(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.String("customer.id", input.ID.String()))
	}
	return result, nil
}

func (s *Service) TopUp(ctx context.Context, input types.TopUpInput) (*types.CustomerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.TopUp",
		trace.WithAttributes(customerAttr(input.CustomerID), attribute.Float64("balance.amount", input.Amount)))
	defer span.End()

	s.logInfo(ctx, "topping up balance", slog.String("customer.id", input.CustomerID.String()), slog.Float64("balance.amount", input.Amount))
	result, err := s.inner.TopUp(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to top up balance", slog.String("customer.id", input.CustomerID.String()))
	}
	return result, nil
}

func (s *Service) GetCart(ctx context.Context, input types.CustomerIdentifier) (*types.CartProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.GetCart", trace.WithAttributes(customerAttr(input.ID)))
	defer span.End()

	result, err := s.inner.GetCart(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("customer.id", input.ID.String()))
	}
	span.SetAttributes(attribute.Int("cart.lines", len(result.Lines)))
	return result, nil
}

func (s *Service) AddToCart(ctx context.Context, input types.CartItemInput) (*types.CartProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.AddToCart",
		trace.WithAttributes(customerAttr(input.CustomerID), productAttr(input.ProductID), attribute.Int("cart.quantity", input.Quantity)))
	defer span.End()

	attrs := cartAttrs(input.CustomerID, input.ProductID, input.Quantity)
	s.logInfo(ctx, "adding to cart", attrs...)
	result, err := s.inner.AddToCart(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add to cart", attrs...)
	}
	s.metrics.recordReserved(ctx, input.Quantity)
	return result, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, input types.CartItemInput) (*types.CartProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.RemoveFromCart",
		trace.WithAttributes(customerAttr(input.CustomerID), productAttr(input.ProductID), attribute.Int("cart.quantity", input.Quantity)))
	defer span.End()

	attrs := cartAttrs(input.CustomerID, input.ProductID, input.Quantity)
	s.logInfo(ctx, "removing from cart", attrs...)
	held := s.heldQuantity(ctx, input.CustomerID, input.ProductID)
	result, err := s.inner.RemoveFromCart(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove from cart", attrs...)
	}
	s.metrics.recordReleased(ctx, min(held, input.Quantity))
	return result, nil
}

func (s *Service) RemoveAllFromCart(ctx context.Context, input types.CartProductInput) (*types.CartProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.RemoveAllFromCart",
		trace.WithAttributes(customerAttr(input.CustomerID), productAttr(input.ProductID)))
	defer span.End()

	attrs := []slog.Attr{slog.String("customer.id", input.CustomerID.String()), slog.String("product.id", input.ProductID.String())}
	s.logInfo(ctx, "removing product from cart", attrs...)
	held := s.heldQuantity(ctx, input.CustomerID, input.ProductID)
	result, err := s.inner.RemoveAllFromCart(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove product from cart", attrs...)
	}
	s.metrics.recordReleased(ctx, held)
	return result, nil
}

func (s *Service) Checkout(ctx context.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.Checkout", trace.WithAttributes(customerAttr(input.ID)))
	defer span.End()

	s.logInfo(ctx, "checking out", slog.String("customer.id", input.ID.String()))
	result, err := s.inner.Checkout(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to check out", slog.String("customer.id", input.ID.String()))
	}
	span.SetAttributes(attribute.String("checkout.status", string(result.Status)), attribute.Float64("checkout.total", result.Total))
	s.metrics.recordCheckout(ctx, result.Status)
	s.logInfo(ctx, "checkout finished",
		slog.String("customer.id", input.ID.String()),
		slog.String("checkout.status", string(result.Status)),
		slog.Float64("checkout.total", result.Total),
		slog.Float64("customer.balance", result.Balance),
	)
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, input types.CustomerIdentifier) ([]*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.ListOrders", trace.WithAttributes(customerAttr(input.ID)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("customer.id", input.ID.String()))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

// heldQuantity reads the cart before a removal so released units can be counted.
func (s *Service) heldQuantity(ctx context.Context, customerID storedomain.CustomerID, productID storedomain.ProductID) int {
	cart, err := s.inner.GetCart(ctx, types.CustomerIdentifier{ID: customerID})
	if err != nil {
		return 0
	}
	for _, line := range cart.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func productAttr(id storedomain.ProductID) attribute.KeyValue {
	return attribute.String("product.id", id.String())
}

func customerAttr(id storedomain.CustomerID) attribute.KeyValue {
	return attribute.String("customer.id", id.String())
}

func cartAttrs(customerID storedomain.CustomerID, productID storedomain.ProductID, quantity int) []slog.Attr {
	return []slog.Attr{
		slog.String("customer.id", customerID.String()),
		slog.String("product.id", productID.String()),
		slog.Int("cart.quantity", quantity),
	}
}

type serviceMetrics struct {
	productsCreated metric.Int64Counter
	unitsRestocked  metric.Int64Counter
	unitsReserved   metric.Int64Counter
	unitsReleased   metric.Int64Counter
	checkouts       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsCreated, _ := m.Int64Counter("store.service.products_created", metric.WithDescription("Number of products added to the catalog"))
	unitsRestocked, _ := m.Int64Counter("store.service.units_restocked", metric.WithDescription("Units added to the stock ledger by restocks"))
	unitsReserved, _ := m.Int64Counter("store.service.units_reserved", metric.WithDescription("Units reserved into carts"))
	unitsReleased, _ := m.Int64Counter("store.service.units_released", metric.WithDescription("Units returned from carts to the stock ledger"))
	checkouts, _ := m.Int64Counter("store.service.checkouts", metric.WithDescription("Checkout attempts by outcome"))
	return serviceMetrics{
		productsCreated: productsCreated,
		unitsRestocked:  unitsRestocked,
		unitsReserved:   unitsReserved,
		unitsReleased:   unitsReleased,
		checkouts:       checkouts,
	}
}

func (m serviceMetrics) recordProductCreated(ctx context.Context, category string) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("product.category", category)))
	}
}

func (m serviceMetrics) recordRestocked(ctx context.Context, amount int) {
	if m.unitsRestocked != nil && amount > 0 {
		m.unitsRestocked.Add(ctx, int64(amount))
	}
}

func (m serviceMetrics) recordReserved(ctx context.Context, amount int) {
	if m.unitsReserved != nil && amount > 0 {
		m.unitsReserved.Add(ctx, int64(amount))
	}
}

func (m serviceMetrics) recordReleased(ctx context.Context, amount int) {
	if m.unitsReleased != nil && amount > 0 {
		m.unitsReleased.Add(ctx, int64(amount))
	}
}

func (m serviceMetrics) recordCheckout(ctx context.Context, status storedomain.CheckoutStatus) {
	if m.checkouts != nil {
		m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("checkout.status", string(status))))
	}
}

var _ storeports.Service = (*Service)(nil)
