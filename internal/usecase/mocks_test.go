package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
)

type mockDetector struct {
	code  string
	err   error
	calls int
}

func (m *mockDetector) Detect(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.code, m.err
}

type translateCall struct {
	text     string
	from, to domain.Language
}

type mockTranslator struct {
	fn    func(text string, from, to domain.Language) (string, error)
	calls []translateCall
}

func (m *mockTranslator) Translate(_ context.Context, text string, from, to domain.Language) (string, error) {
	m.calls = append(m.calls, translateCall{text: text, from: from, to: to})
	if m.fn == nil {
		return text, nil
	}
	return m.fn(text, from, to)
}

type mockEmbedder struct {
	vector     []float32
	batch      [][]float32
	err        error
	dim        int
	calls      int
	batchCalls int
	texts      []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	m.texts = append(m.texts, text)
	return m.vector, m.err
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	m.texts = append(m.texts, texts...)
	if m.err != nil {
		return nil, m.err
	}
	if m.batch != nil {
		return m.batch, nil
	}
	res := make([][]float32, len(texts))
	for i := range texts {
		res[i] = []float32{float32(i), 1}
	}
	return res, nil
}

func (m *mockEmbedder) Dimension() int {
	return m.dim
}

type mockIndex struct {
	hits        []domain.RetrievalHit
	err         error
	insertErr   error
	createErr   error
	searchCalls int
	lastLimit   int
	createdDim  uint64
	inserted    []domain.IndexRecord
}

func (m *mockIndex) CreateCollection(_ context.Context, dimension uint64) error {
	m.createdDim = dimension
	return m.createErr
}

func (m *mockIndex) Insert(_ context.Context, records []domain.IndexRecord, _ [][]float32) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, records...)
	return nil
}

func (m *mockIndex) Search(_ context.Context, _ []float32, limit int) ([]domain.RetrievalHit, error) {
	m.searchCalls++
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	res := make([]domain.RetrievalHit, len(m.hits))
	copy(res, m.hits)
	return res, nil
}

type mockMetadataStore struct {
	records map[string]domain.MetadataRecord
	err     error
	calls   int
	skus    []string
}

func (m *mockMetadataStore) FetchBySkus(_ context.Context, skus []string) (map[string]domain.MetadataRecord, error) {
	m.calls++
	m.skus = skus
	return m.records, m.err
}

type mockGenerator struct {
	text   string
	err    error
	calls  int
	prompt string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.text, m.err
}

type mockRetriever struct {
	hits  []domain.RetrievalHit
	err   error
	calls int
	query string
}

func (m *mockRetriever) Search(_ context.Context, query string, limit int) ([]domain.RetrievalHit, error) {
	m.calls++
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	return m.hits[:min(limit, len(m.hits))], nil
}

type mockProductRepo struct {
	records    map[string]domain.MetadataRecord
	err        error
	fetchCalls [][]string
	catalog    []domain.CatalogProduct
	listErr    error
}

func (m *mockProductRepo) FetchBySkus(_ context.Context, skus []string) (map[string]domain.MetadataRecord, error) {
	m.fetchCalls = append(m.fetchCalls, skus)
	if m.err != nil {
		return nil, m.err
	}
	res := make(map[string]domain.MetadataRecord)
	for _, sku := range skus {
		if rec, ok := m.records[sku]; ok {
			res[sku] = rec
		}
	}
	return res, nil
}

func (m *mockProductRepo) ListCatalog(_ context.Context, afterSku string, limit int) ([]domain.CatalogProduct, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	res := make([]domain.CatalogProduct, 0, limit)
	for _, p := range m.catalog {
		if p.Sku > afterSku && len(res) < limit {
			res = append(res, p)
		}
	}
	return res, nil
}

type mockMetadataCache struct {
	mu      sync.Mutex
	records map[string]domain.MetadataRecord
	getErr  error
	setErr  error
	setCh   chan []domain.MetadataRecord
	deleted []string
}

func (m *mockMetadataCache) GetMetadata(_ context.Context, skus []string) (map[string]domain.MetadataRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	res := make(map[string]domain.MetadataRecord)
	for _, sku := range skus {
		if rec, ok := m.records[sku]; ok {
			res[sku] = rec
		}
	}
	return res, nil
}

func (m *mockMetadataCache) SetMetadata(_ context.Context, records []domain.MetadataRecord) error {
	if m.setCh != nil {
		m.setCh <- records
	}
	return m.setErr
}

func (m *mockMetadataCache) DeleteMetadata(_ context.Context, skus []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, skus...)
	return nil
}

type mockEmbeddingCache struct {
	store  map[string][]float32
	getErr error
	setErr error
	sets   int
}

func (m *mockEmbeddingCache) GetEmbedding(_ context.Context, key string) ([]float32, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.store[key], nil
}

func (m *mockEmbeddingCache) SetEmbedding(_ context.Context, key string, vector []float32) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	if m.store == nil {
		m.store = map[string][]float32{}
	}
	m.store[key] = vector
	return nil
}

type mockVersionRepo struct {
	err   error
	skus  []string
	inTx  bool
	calls int
}

func (m *mockVersionRepo) Upsert(ctx context.Context, sku string) (*domain.ProductEmbeddingVersion, error) {
	m.calls++
	m.inTx = ctx.Value(txMarker{}) != nil
	if m.err != nil {
		return nil, m.err
	}
	m.skus = append(m.skus, sku)
	return &domain.ProductEmbeddingVersion{Sku: sku, EmbeddingVersion: 1}, nil
}

type txMarker struct{}

// mockTxManager помечает контекст, чтобы репозитории могли проверить, что их вызвали в транзакции.
type mockTxManager struct {
	calls      int
	committed  int
	rolledBack int
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		m.rolledBack++
		return err
	}
	m.committed++
	return nil
}

type mockInteractionLogRepo struct {
	err  error
	logs []*domain.InteractionLog
	inTx bool
}

func (m *mockInteractionLogRepo) Create(ctx context.Context, log *domain.InteractionLog) error {
	m.inTx = ctx.Value(txMarker{}) != nil
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

type mockOutboxRepo struct {
	err    error
	events []*OutboxEvent
	inTx   bool
}

func (m *mockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.inTx = ctx.Value(txMarker{}) != nil
	if m.err != nil {
		return nil, m.err
	}
	m.events = append(m.events, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(_ context.Context, _ int64) error {
	return nil
}

type mockAssetLinker struct{}

func (mockAssetLinker) Resolve(_ context.Context, raw string) string {
	if len(raw) > 5 && raw[:5] == "s3://" {
		return "https://assets.local/" + raw[5:]
	}
	return raw
}

type mockInteractionWriter struct {
	ch  chan *domain.InteractionLog
	err error
}

func (m *mockInteractionWriter) RecordInteraction(_ context.Context, log *domain.InteractionLog) error {
	m.ch <- log
	return m.err
}

func hit(sku, name, category string, score float32) domain.RetrievalHit {
	return domain.NewRetrievalHit("id-"+sku, sku, name, category, score)
}
