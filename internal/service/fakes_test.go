package service

import (
	"context"
	"petshop-backend/internal/model"
	"petshop-backend/internal/repository/interfaces"
	"sort"
	"strings"
	"sync"
)

// fakeTx 直接执行回调，记录调用次数
type fakeTx struct {
	calls int
}

func (t *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type memProducts struct {
	mu    sync.Mutex
	rows  map[int]*model.Product
	next  int
	finds int
}

func newMemProducts(products ...*model.Product) *memProducts {
	m := &memProducts{rows: map[int]*model.Product{}}
	for _, p := range products {
		m.next++
		if p.ID == 0 {
			p.ID = m.next
		}
		m.rows[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	p.ID = m.next
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id int) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) FindByFilter(_ context.Context, f model.ProductFilter) ([]*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Product
	for _, p := range m.rows {
		if matchesFilter(p, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// matchesFilter 与 SQL 相同：各条件 AND，列表内 IN，颜色忽略大小写，名称子串匹配
func matchesFilter(p *model.Product, f model.ProductFilter) bool {
	if len(f.Sizes) > 0 && !containsFold(sizesToStrings(f.Sizes), string(p.Size), false) {
		return false
	}
	if len(f.PetTypes) > 0 {
		pets := make([]string, 0, len(f.PetTypes))
		for _, t := range f.PetTypes {
			pets = append(pets, string(t))
		}
		if !containsFold(pets, string(p.PetType), false) {
			return false
		}
	}
	if len(f.Colors) > 0 && !containsFold(f.Colors, p.Color, true) {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(s)) {
		return false
	}
	return true
}

func sizesToStrings(sizes []model.Size) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, string(s))
	}
	return out
}

func containsFold(list []string, v string, fold bool) bool {
	for _, item := range list {
		if item == v || (fold && strings.EqualFold(item, v)) {
			return true
		}
	}
	return false
}

func (m *memProducts) Update(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) Delete(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memProducts) Count(_ context.Context) (int, error) {
	return len(m.rows), nil
}

type memCart struct {
	rows map[int]*model.CartItem
	next int
	// staleReads 模拟并发事务：非加锁读看不到其他请求刚插入的行
	staleReads bool
	// afterLock 在 LockByUserID 返回前执行，模拟锁外的并发写入
	afterLock func()
	locks     int
}

func newMemCart() *memCart {
	return &memCart{rows: map[int]*model.CartItem{}}
}

func (m *memCart) FindByUserID(_ context.Context, userID int) ([]*model.CartItem, error) {
	var out []*model.CartItem
	for _, r := range m.rows {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCart) FindByID(_ context.Context, id int) (*model.CartItem, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memCart) LockByUserID(ctx context.Context, userID int) ([]*model.CartItem, error) {
	m.locks++
	items, err := m.FindByUserID(ctx, userID)
	if m.afterLock != nil {
		m.afterLock()
	}
	return items, err
}

func (m *memCart) FindByUserProductSize(ctx context.Context, userID, productID int, size string) (*model.CartItem, error) {
	if m.staleReads {
		return nil, nil
	}
	return m.LockByUserProductSize(ctx, userID, productID, size)
}

func (m *memCart) LockByUserProductSize(_ context.Context, userID, productID int, size string) (*model.CartItem, error) {
	for _, r := range m.rows {
		if r.UserID == userID && r.ProductID == productID && r.SelectedSize == size {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCart) Create(_ context.Context, item *model.CartItem) error {
	for _, r := range m.rows {
		if r.UserID == item.UserID && r.ProductID == item.ProductID && r.SelectedSize == item.SelectedSize {
			return interfaces.ErrDuplicate
		}
	}
	m.next++
	item.ID = m.next
	cp := *item
	m.rows[item.ID] = &cp
	return nil
}

func (m *memCart) UpdateQuantity(_ context.Context, id, quantity int) error {
	if r, ok := m.rows[id]; ok {
		r.Quantity = quantity
	}
	return nil
}

func (m *memCart) Delete(_ context.Context, id int) error {
	delete(m.rows, id)
	return nil
}

func (m *memCart) DeleteByUserID(_ context.Context, userID int) error {
	for id, r := range m.rows {
		if r.UserID == userID {
			delete(m.rows, id)
		}
	}
	return nil
}

type memWishlist struct {
	rows []*model.WishlistItem
	next int
	// staleExists 模拟并发请求都通过了存在性检查
	staleExists bool
}

func (m *memWishlist) FindByUserID(_ context.Context, userID int) ([]*model.WishlistItem, error) {
	var out []*model.WishlistItem
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memWishlist) Exists(_ context.Context, userID, productID int) (bool, error) {
	if m.staleExists {
		return false, nil
	}
	for _, r := range m.rows {
		if r.UserID == userID && r.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memWishlist) Create(_ context.Context, item *model.WishlistItem) error {
	for _, r := range m.rows {
		if r.UserID == item.UserID && r.ProductID == item.ProductID {
			return interfaces.ErrDuplicate
		}
	}
	m.next++
	item.ID = m.next
	m.rows = append(m.rows, item)
	return nil
}

func (m *memWishlist) Delete(_ context.Context, userID, productID int) (bool, error) {
	for i, r := range m.rows {
		if r.UserID == userID && r.ProductID == productID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memWishlist) DeleteByUserID(_ context.Context, userID int) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

type memCards struct {
	rows  map[int]*model.PaymentCard
	next  int
	locks int
}

func newMemCards() *memCards {
	return &memCards{rows: map[int]*model.PaymentCard{}}
}

func (m *memCards) FindByUserID(_ context.Context, userID int) ([]*model.PaymentCard, error) {
	var out []*model.PaymentCard
	for _, r := range m.rows {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCards) LockByUserID(ctx context.Context, userID int) ([]*model.PaymentCard, error) {
	m.locks++
	return m.FindByUserID(ctx, userID)
}

func (m *memCards) FindByID(_ context.Context, id int) (*model.PaymentCard, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memCards) Create(_ context.Context, card *model.PaymentCard) error {
	m.next++
	card.ID = m.next
	cp := *card
	m.rows[card.ID] = &cp
	return nil
}

func (m *memCards) Delete(_ context.Context, id int) error {
	delete(m.rows, id)
	return nil
}

func (m *memCards) ClearDefault(_ context.Context, userID int) error {
	for _, r := range m.rows {
		if r.UserID == userID {
			r.IsDefault = false
		}
	}
	return nil
}

func (m *memCards) SetDefault(_ context.Context, id int) error {
	if r, ok := m.rows[id]; ok {
		r.IsDefault = true
	}
	return nil
}

func (m *memCards) defaults(userID int) int {
	n := 0
	for _, r := range m.rows {
		if r.UserID == userID && r.IsDefault {
			n++
		}
	}
	return n
}

func (m *memCards) count(userID int) int {
	n := 0
	for _, r := range m.rows {
		if r.UserID == userID {
			n++
		}
	}
	return n
}

type memOrders struct {
	rows []*model.Order
}

func (m *memOrders) Create(_ context.Context, o *model.Order) error {
	o.ID = len(m.rows) + 1
	for _, it := range o.Items {
		it.OrderID = o.ID
	}
	m.rows = append(m.rows, o)
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id int) (*model.Order, error) {
	for _, o := range m.rows {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (m *memOrders) FindByUserID(_ context.Context, userID int) ([]*model.Order, error) {
	var out []*model.Order
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memOrders) Count(_ context.Context) (int, error) {
	return len(m.rows), nil
}

type memComments struct {
	rows map[int]*model.Comment
	next int
}

func newMemComments() *memComments {
	return &memComments{rows: map[int]*model.Comment{}}
}

func (m *memComments) Create(_ context.Context, c *model.Comment) error {
	m.next++
	c.ID = m.next
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memComments) FindByID(_ context.Context, id int) (*model.Comment, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memComments) filter(keep func(*model.Comment) bool) []*model.Comment {
	var out []*model.Comment
	for _, c := range m.rows {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memComments) FindByProductID(_ context.Context, productID int) ([]*model.Comment, error) {
	return m.filter(func(c *model.Comment) bool { return c.ProductID == productID }), nil
}

func (m *memComments) FindByUserID(_ context.Context, userID int) ([]*model.Comment, error) {
	return m.filter(func(c *model.Comment) bool { return c.UserID == userID }), nil
}

func (m *memComments) FindAll(_ context.Context) ([]*model.Comment, error) {
	return m.filter(func(*model.Comment) bool { return true }), nil
}

func (m *memComments) Update(_ context.Context, c *model.Comment) error {
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memComments) Delete(_ context.Context, id int) error {
	delete(m.rows, id)
	return nil
}

type memFeedback struct {
	rows map[int]*model.Feedback
	next int
}

func (m *memFeedback) Create(_ context.Context, f *model.Feedback) error {
	m.next++
	f.ID = m.next
	cp := *f
	m.rows[f.ID] = &cp
	return nil
}

func (m *memFeedback) FindByID(_ context.Context, id int) (*model.Feedback, error) {
	f, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *memFeedback) FindByUserID(_ context.Context, userID int) ([]*model.Feedback, error) {
	var out []*model.Feedback
	for _, f := range m.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFeedback) FindAll(_ context.Context) ([]*model.Feedback, error) {
	var out []*model.Feedback
	for _, f := range m.rows {
		out = append(out, f)
	}
	return out, nil
}

func (m *memFeedback) Update(_ context.Context, f *model.Feedback) error {
	cp := *f
	m.rows[f.ID] = &cp
	return nil
}

func (m *memFeedback) Delete(_ context.Context, id int) error {
	delete(m.rows, id)
	return nil
}

type memPets struct {
	rows map[int]*model.Pet
	next int
}

func (m *memPets) Create(_ context.Context, p *model.Pet) error {
	m.next++
	p.ID = m.next
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPets) FindByID(_ context.Context, id int) (*model.Pet, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPets) FindByUserID(_ context.Context, userID int) ([]*model.Pet, error) {
	var out []*model.Pet
	for _, p := range m.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPets) Update(_ context.Context, p *model.Pet) error {
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPets) Delete(_ context.Context, id int) error {
	delete(m.rows, id)
	return nil
}

// recordingNotifier 记录通知而不发送
type recordingNotifier struct {
	mu       sync.Mutex
	welcomed []string
	orders   []string
}

func (n *recordingNotifier) SendWelcome(user *model.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomed = append(n.welcomed, user.Email)
}

func (n *recordingNotifier) SendOrderConfirmation(_ *model.User, order *model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order.OrderNumber)
}
