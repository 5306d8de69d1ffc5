package order

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

// fakeUserRepo repositorio de usuarios en memoria para las pruebas.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// fakeOrderRepo repositorio de pedidos en memoria con la misma semántica CAS
// que la implementación PostgreSQL. beforeUpdate, si está definido, corre al
// inicio de UpdateStatus para simular escrituras concurrentes.
type fakeOrderRepo struct {
	orders       map[string]*entity.Order
	beforeUpdate func()
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*entity.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(order *entity.Order) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for _, o := range r.orders {
		if filter.EmployeeID != "" && o.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.ExcludeTerminal && entity.IsTerminalStatus(o.Status) {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderedAt.After(out[j].OrderedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, expectedStatus, newStatus string, stampDelivered bool) (*entity.Order, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	o, ok := r.orders[id]
	if !ok || o.Status != expectedStatus {
		return nil, nil
	}
	o.Status = newStatus
	if stampDelivered && o.DeliveredAt == nil {
		now := time.Now()
		o.DeliveredAt = &now
	}
	cp := *o
	return &cp, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func testOrder(id, employeeID, status string, orderedAt time.Time) *entity.Order {
	return &entity.Order{
		ID:           id,
		EmployeeID:   employeeID,
		EmployeeName: "Empleado " + employeeID,
		Department:   "Ventas",
		Items:        []entity.OrderItem{{ItemID: "it-1", ItemName: "Café", Quantity: 1}},
		Status:       status,
		OrderedAt:    orderedAt,
	}
}

func TestCreate_PendingConDatosCongelados(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{
		ID: "u-1", Name: "Laura Gómez", Department: "Contabilidad", Role: entity.RoleEmployee,
	})
	orderRepo := newFakeOrderRepo()
	uc := NewOrderUseCase(orderRepo, userRepo)

	out, err := uc.Create("u-1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ItemID: "it-1", ItemName: "Café", Quantity: 2},
			{ItemID: "it-2", ItemName: "Agua", Quantity: 1},
		},
		Note: "sin azúcar",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, out.Status)
	assert.Equal(t, "u-1", out.EmployeeID)
	assert.Equal(t, "Laura Gómez", out.EmployeeName)
	assert.Equal(t, "Contabilidad", out.Department)
	assert.Len(t, out.Items, 2)
	assert.Nil(t, out.DeliveredAt)

	// El nombre queda congelado: cambiar el usuario no toca el pedido
	userRepo.users["u-1"].Name = "Laura Pérez"
	stored, err := orderRepo.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laura Gómez", stored.EmployeeName)
}

func TestCreate_ValidacionDeEntrada(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u-1", Name: "Laura", Role: entity.RoleEmployee})
	uc := NewOrderUseCase(newFakeOrderRepo(), userRepo)

	longNote := make([]byte, entity.NoteMaxLen+1)
	for i := range longNote {
		longNote[i] = 'a'
	}

	cases := []struct {
		name string
		in   dto.CreateOrderRequest
	}{
		{"sin items", dto.CreateOrderRequest{}},
		{"cantidad cero", dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ItemID: "it-1", ItemName: "Café", Quantity: 0}}}},
		{"cantidad negativa", dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ItemID: "it-1", ItemName: "Café", Quantity: -3}}}},
		{"itemId vacío", dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ItemName: "Café", Quantity: 1}}}},
		{"itemName vacío", dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ItemID: "it-1", Quantity: 1}}}},
		{"nota demasiado larga", dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{{ItemID: "it-1", ItemName: "Café", Quantity: 1}},
			Note:  string(longNote),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create("u-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_NotaEnElLimiteExacto(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u-1", Name: "Laura", Role: entity.RoleEmployee})
	uc := NewOrderUseCase(newFakeOrderRepo(), userRepo)

	note := make([]byte, entity.NoteMaxLen)
	for i := range note {
		note[i] = 'x'
	}
	_, err := uc.Create("u-1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ItemID: "it-1", ItemName: "Café", Quantity: 1}},
		Note:  string(note),
	})
	assert.NoError(t, err)
}

func TestCreate_UsuarioDesaparecido(t *testing.T) {
	uc := NewOrderUseCase(newFakeOrderRepo(), newFakeUserRepo())

	_, err := uc.Create("fantasma", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ItemID: "it-1", ItemName: "Café", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListFor_EmpleadoSoloVeLosSuyos(t *testing.T) {
	base := time.Now()
	orderRepo := newFakeOrderRepo(
		testOrder("o-1", "u-1", entity.StatusPending, base),
		testOrder("o-2", "u-2", entity.StatusPending, base.Add(time.Minute)),
		testOrder("o-3", "u-1", entity.StatusDelivered, base.Add(2*time.Minute)),
	)
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.ListFor("u-1", entity.RoleEmployee, "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, o := range out {
		assert.Equal(t, "u-1", o.EmployeeID)
	}
	// Más reciente primero
	assert.Equal(t, "o-3", out[0].ID)
	assert.Equal(t, "o-1", out[1].ID)
}

func TestListFor_DispatcherColaActiva(t *testing.T) {
	base := time.Now()
	orderRepo := newFakeOrderRepo(
		testOrder("o-1", "u-1", entity.StatusPending, base),
		testOrder("o-2", "u-2", entity.StatusAccepted, base.Add(time.Minute)),
		testOrder("o-3", "u-1", entity.StatusInProgress, base.Add(2*time.Minute)),
		testOrder("o-4", "u-2", entity.StatusDelivered, base.Add(3*time.Minute)),
		testOrder("o-5", "u-1", entity.StatusCancelled, base.Add(4*time.Minute)),
	)
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.ListFor("d-1", entity.RoleDispatcher, "")
	require.NoError(t, err)
	require.Len(t, out, 3)
	// La cola activa excluye los terminales y llega de todos los empleados
	assert.Equal(t, "o-3", out[0].ID)
	assert.Equal(t, "o-2", out[1].ID)
	assert.Equal(t, "o-1", out[2].ID)
}

func TestListFor_FiltroExactoDeEstado(t *testing.T) {
	base := time.Now()
	orderRepo := newFakeOrderRepo(
		testOrder("o-1", "u-1", entity.StatusPending, base),
		testOrder("o-2", "u-2", entity.StatusDelivered, base.Add(time.Minute)),
		testOrder("o-3", "u-1", entity.StatusDelivered, base.Add(2*time.Minute)),
	)
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.ListFor("a-1", entity.RoleAdmin, entity.StatusDelivered)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, o := range out {
		assert.Equal(t, entity.StatusDelivered, o.Status)
	}
}

func TestListFor_EstadoDesconocidoRechazado(t *testing.T) {
	uc := NewOrderUseCase(newFakeOrderRepo(), newFakeUserRepo())

	_, err := uc.ListFor("a-1", entity.RoleAdmin, "enviado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListFor_RolDesconocidoListaVacia(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusPending, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.ListFor("x-1", "auditor", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestListFor_TopeDeCienResultados(t *testing.T) {
	base := time.Now()
	orderRepo := newFakeOrderRepo()
	for i := 0; i < 120; i++ {
		require.NoError(t, orderRepo.Create(testOrder(
			fmt.Sprintf("o-%03d", i), "u-1", entity.StatusPending, base.Add(time.Duration(i)*time.Second),
		)))
	}
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.ListFor("d-1", entity.RoleDispatcher, "")
	require.NoError(t, err)
	assert.Len(t, out, 100)
	// Los 100 más recientes: el más viejo visible es o-020
	assert.Equal(t, "o-119", out[0].ID)
	assert.Equal(t, "o-020", out[99].ID)
}

func TestTransition_FlujoCompletoHastaEntrega(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusPending, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.Transition("o-1", entity.RoleDispatcher, entity.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, out.Status)

	out, err = uc.Transition("o-1", entity.RoleDispatcher, entity.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, out.Status)
	assert.Nil(t, out.DeliveredAt)

	out, err = uc.Transition("o-1", entity.RoleAdmin, entity.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivered, out.Status)
	require.NotNil(t, out.DeliveredAt)
}

func TestTransition_RolSinPermiso(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusPending, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	_, err := uc.Transition("o-1", entity.RoleEmployee, entity.StatusAccepted)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El pedido no se tocó
	stored, _ := orderRepo.GetByID("o-1")
	assert.Equal(t, entity.StatusPending, stored.Status)
}

func TestTransition_SaltoDeEstadoRechazado(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{entity.StatusPending, entity.StatusInProgress},
		{entity.StatusPending, entity.StatusDelivered},
		{entity.StatusAccepted, entity.StatusDelivered},
		{entity.StatusAccepted, entity.StatusPending},
		{entity.StatusInProgress, entity.StatusAccepted},
		{entity.StatusDelivered, entity.StatusPending},
		{entity.StatusDelivered, entity.StatusCancelled},
		{entity.StatusCancelled, entity.StatusAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.from+"→"+tc.to, func(t *testing.T) {
			orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", tc.from, time.Now()))
			uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

			_, err := uc.Transition("o-1", entity.RoleDispatcher, tc.to)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			stored, _ := orderRepo.GetByID("o-1")
			assert.Equal(t, tc.from, stored.Status)
		})
	}
}

func TestTransition_EstadoDesconocidoRechazado(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusPending, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	_, err := uc.Transition("o-1", entity.RoleDispatcher, "enviado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransition_PedidoInexistente(t *testing.T) {
	uc := NewOrderUseCase(newFakeOrderRepo(), newFakeUserRepo())

	_, err := uc.Transition("no-existe", entity.RoleDispatcher, entity.StatusAccepted)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestTransition_EntregaEstampaUnaSolaVez(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusInProgress, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	first, err := uc.Transition("o-1", entity.RoleDispatcher, entity.StatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, first.DeliveredAt)

	// Reintentar la entrega no es un sucesor legal y no mueve el timestamp
	_, err = uc.Transition("o-1", entity.RoleDispatcher, entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := orderRepo.GetByID("o-1")
	require.NotNil(t, stored.DeliveredAt)
	assert.True(t, stored.DeliveredAt.Equal(*first.DeliveredAt))
}

func TestTransition_CarreraPerdidaDevuelveConflicto(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusPending, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	// Otro dispatcher gana la carrera entre la lectura y el CAS
	orderRepo.beforeUpdate = func() {
		orderRepo.orders["o-1"].Status = entity.StatusAccepted
		orderRepo.beforeUpdate = nil
	}

	_, err := uc.Transition("o-1", entity.RoleDispatcher, entity.StatusAccepted)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancel_EmpleadoPropioPending(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusPending, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.Cancel("o-1", "u-1", entity.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, out.Status)
	assert.Nil(t, out.DeliveredAt)
}

func TestCancel_EmpleadoPedidoAjeno(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusPending, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	_, err := uc.Cancel("o-1", "u-2", entity.RoleEmployee)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancel_EmpleadoPedidoYaAceptado(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusAccepted, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	_, err := uc.Cancel("o-1", "u-1", entity.RoleEmployee)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_DispatcherPedidoEnCurso(t *testing.T) {
	orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", entity.StatusInProgress, time.Now()))
	uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

	out, err := uc.Cancel("o-1", "d-1", entity.RoleDispatcher)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, out.Status)
}

func TestCancel_TerminalRechazado(t *testing.T) {
	for _, status := range []string{entity.StatusDelivered, entity.StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			orderRepo := newFakeOrderRepo(testOrder("o-1", "u-1", status, time.Now()))
			uc := NewOrderUseCase(orderRepo, newFakeUserRepo())

			_, err := uc.Cancel("o-1", "a-1", entity.RoleAdmin)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		})
	}
}
