package satwa

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
)

// memRepo повторяет семантику pgsatwa в памяти: уникальный kode_resi, каскадное удаление.
type memRepo struct {
	satwa    map[uuid.UUID]*models.Satwa
	progress map[uuid.UUID]*models.Progress
	dokumen  map[uuid.UUID]*models.Dokumen
	clock    time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		satwa:    map[uuid.UUID]*models.Satwa{},
		progress: map[uuid.UUID]*models.Progress{},
		dokumen:  map[uuid.UUID]*models.Dokumen{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func copySatwa(t *models.Satwa) *models.Satwa {
	c := *t
	return &c
}

func (r *memRepo) ListSatwa(ctx context.Context, f models.SatwaFilter) ([]*models.Satwa, int, error) {
	q := strings.ToLower(f.Search)
	var all []*models.Satwa
	for _, t := range r.satwa {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.KodeResi), q) &&
			!strings.Contains(strings.ToLower(t.Nama), q) &&
			!strings.Contains(strings.ToLower(t.Spesies), q) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		all = append(all, copySatwa(t))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if f.Offset >= total {
		return []*models.Satwa{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r *memRepo) GetSatwaByID(ctx context.Context, id uuid.UUID) (*models.Satwa, error) {
	t, ok := r.satwa[id]
	if !ok {
		return nil, apperr.NotFound("satwa not found")
	}
	return copySatwa(t), nil
}

func (r *memRepo) GetSatwaByKodeResi(ctx context.Context, kodeResi string) (*models.Satwa, error) {
	for _, t := range r.satwa {
		if t.KodeResi == kodeResi {
			return copySatwa(t), nil
		}
	}
	return nil, apperr.NotFound("resi not found")
}

func (r *memRepo) kodeTaken(kode string, except uuid.UUID) bool {
	for id, t := range r.satwa {
		if id != except && t.KodeResi == kode {
			return true
		}
	}
	return false
}

func (r *memRepo) CreateSatwa(ctx context.Context, in models.SatwaInput) (*models.Satwa, error) {
	if r.kodeTaken(in.KodeResi, uuid.Nil) {
		return nil, apperr.Conflict("kode_resi already exists")
	}
	now := r.tick()
	t := &models.Satwa{
		ID: uuid.New(), KodeResi: in.KodeResi, Nama: in.Nama, Spesies: in.Spesies,
		Asal: in.Asal, Tujuan: in.Tujuan, Status: in.Status, CreatedAt: now, UpdatedAt: now,
	}
	r.satwa[t.ID] = t
	return copySatwa(t), nil
}

func (r *memRepo) UpdateSatwa(ctx context.Context, id uuid.UUID, in models.SatwaInput) (*models.Satwa, error) {
	t, ok := r.satwa[id]
	if !ok {
		return nil, apperr.NotFound("satwa not found")
	}
	if r.kodeTaken(in.KodeResi, id) {
		return nil, apperr.Conflict("kode_resi already exists")
	}
	t.KodeResi, t.Nama, t.Spesies, t.Asal, t.Tujuan = in.KodeResi, in.Nama, in.Spesies, in.Asal, in.Tujuan
	if in.Status != "" {
		t.Status = in.Status
	}
	t.UpdatedAt = r.tick()
	return copySatwa(t), nil
}

func (r *memRepo) SetSatwaStatus(ctx context.Context, id uuid.UUID, status models.SatwaStatus) (*models.Satwa, error) {
	t, ok := r.satwa[id]
	if !ok {
		return nil, apperr.NotFound("satwa not found")
	}
	t.Status = status
	t.UpdatedAt = r.tick()
	return copySatwa(t), nil
}

func (r *memRepo) DeleteSatwa(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.satwa[id]; !ok {
		return apperr.NotFound("satwa not found")
	}
	delete(r.satwa, id)
	for pid, p := range r.progress {
		if p.SatwaID == id {
			delete(r.progress, pid)
		}
	}
	for did, d := range r.dokumen {
		if d.SatwaID == id {
			delete(r.dokumen, did)
		}
	}
	return nil
}

func (r *memRepo) ListProgress(ctx context.Context, satwaID uuid.UUID) ([]*models.Progress, error) {
	out := []*models.Progress{}
	for _, p := range r.progress {
		if p.SatwaID == satwaID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Tanggal.Equal(out[j].Tanggal) {
			return out[i].Tanggal.Before(out[j].Tanggal)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memRepo) AddProgress(ctx context.Context, satwaID uuid.UUID, in models.ProgressInput) (*models.Progress, *models.Satwa, error) {
	t, ok := r.satwa[satwaID]
	if !ok {
		return nil, nil, apperr.NotFound("satwa not found")
	}
	now := r.tick()
	if in.ShipmentStatus != "" {
		t.Status = in.ShipmentStatus
	}
	t.UpdatedAt = now
	p := &models.Progress{
		ID: uuid.New(), SatwaID: satwaID, Status: in.Status, Lokasi: in.Lokasi,
		Keterangan: in.Keterangan, Tanggal: in.Tanggal, CreatedAt: now,
	}
	r.progress[p.ID] = p
	c := *p
	return &c, copySatwa(t), nil
}

func (r *memRepo) UpdateProgress(ctx context.Context, satwaID, progressID uuid.UUID, in models.ProgressInput) (*models.Progress, error) {
	p, ok := r.progress[progressID]
	if !ok || p.SatwaID != satwaID {
		return nil, apperr.NotFound("progress not found")
	}
	p.Status, p.Lokasi, p.Keterangan, p.Tanggal = in.Status, in.Lokasi, in.Keterangan, in.Tanggal
	c := *p
	return &c, nil
}

func (r *memRepo) DeleteProgress(ctx context.Context, satwaID, progressID uuid.UUID) error {
	p, ok := r.progress[progressID]
	if !ok || p.SatwaID != satwaID {
		return apperr.NotFound("progress not found")
	}
	delete(r.progress, progressID)
	return nil
}

func (r *memRepo) ListDokumen(ctx context.Context, satwaID uuid.UUID) ([]*models.Dokumen, error) {
	out := []*models.Dokumen{}
	for _, d := range r.dokumen {
		if d.SatwaID == satwaID {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *memRepo) GetDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) (*models.Dokumen, error) {
	d, ok := r.dokumen[dokumenID]
	if !ok || d.SatwaID != satwaID {
		return nil, apperr.NotFound("dokumen not found")
	}
	c := *d
	return &c, nil
}

func (r *memRepo) CreateDokumen(ctx context.Context, in models.DokumenCreateInput) (*models.Dokumen, error) {
	if _, ok := r.satwa[in.SatwaID]; !ok {
		return nil, apperr.NotFound("satwa not found")
	}
	d := &models.Dokumen{
		ID: uuid.New(), SatwaID: in.SatwaID, Nama: in.Nama,
		FileURL: in.FileURL, FileKey: in.FileKey, UploadedAt: r.tick(),
	}
	r.dokumen[d.ID] = d
	c := *d
	return &c, nil
}

func (r *memRepo) DeleteDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) error {
	d, ok := r.dokumen[dokumenID]
	if !ok || d.SatwaID != satwaID {
		return apperr.NotFound("dokumen not found")
	}
	delete(r.dokumen, dokumenID)
	return nil
}

type memObjects struct {
	data map[string][]byte
}

func newMemObjects() *memObjects {
	return &memObjects{data: map[string][]byte{}}
}

func (o *memObjects) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	o.data[key] = b
	return nil
}

func (o *memObjects) Remove(ctx context.Context, key string) error {
	delete(o.data, key)
	return nil
}

func (o *memObjects) URL(key string) string {
	return "http://localhost:9000/satwa-docs/" + key
}
