package skills

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozgaar/backend/pkg/users"
)

type stubModel struct {
	reply string
	err   error
	calls int
}

func (m *stubModel) Ask(context.Context, string, string) (string, error) {
	m.calls++
	return m.reply, m.err
}

type memRepo struct {
	byName    map[string]Skill
	userSkill map[uuid.UUID]map[uuid.UUID]int
}

func newMemRepo() *memRepo {
	return &memRepo{byName: map[string]Skill{}, userSkill: map[uuid.UUID]map[uuid.UUID]int{}}
}

func (r *memRepo) GetOrCreate(_ context.Context, name string) (Skill, error) {
	if s, ok := r.byName[name]; ok {
		return s, nil
	}
	s := Skill{ID: uuid.New(), Name: name}
	r.byName[name] = s
	return s, nil
}

func (r *memRepo) AttachToJob(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (r *memRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]UserSkill, error) {
	var out []UserSkill
	for _, s := range r.byName {
		if p, ok := r.userSkill[userID][s.ID]; ok {
			out = append(out, UserSkill{SkillID: s.ID, Name: s.Name, Proficiency: p})
		}
	}
	return out, nil
}

func (r *memRepo) UpsertForUser(_ context.Context, userID, skillID uuid.UUID, p int) error {
	if r.userSkill[userID] == nil {
		r.userSkill[userID] = map[uuid.UUID]int{}
	}
	r.userSkill[userID][skillID] = p
	return nil
}

func (r *memRepo) RemoveForUser(_ context.Context, userID, skillID uuid.UUID) error {
	delete(r.userSkill[userID], skillID)
	return nil
}

type profiles struct{ ensured int }

func (p *profiles) Ensure(context.Context, users.User) error {
	p.ensured++
	return nil
}

func TestExtractSkipsShortDescriptions(t *testing.T) {
	m := &stubModel{reply: `["go"]`}
	got := NewExtractor(m).Extract(context.Background(), "Go dev, remote")
	assert.Empty(t, got)
	assert.Zero(t, m.calls)
}

func TestExtractLowercases(t *testing.T) {
	m := &stubModel{reply: "```json\n[\"Go\", \" PostgreSQL \", \"\"]\n```"}
	got := NewExtractor(m).Extract(context.Background(), strings.Repeat("backend engineer ", 3))
	assert.Equal(t, []string{"go", "postgresql"}, got)
	assert.Equal(t, 1, m.calls)
}

func TestExtractFailSoft(t *testing.T) {
	desc := strings.Repeat("backend engineer ", 3)
	for _, m := range []*stubModel{
		{err: errors.New("timeout")},
		{reply: `{"skills": "go"}`},
		{reply: "no idea"},
	} {
		assert.Equal(t, []string{}, NewExtractor(m).Extract(context.Background(), desc))
	}
	assert.Equal(t, []string{}, NewExtractor(nil).Extract(context.Background(), desc))
}

func TestAddNormalizesAndValidates(t *testing.T) {
	repo := newMemRepo()
	p := &profiles{}
	svc := NewService(repo, p, NewExtractor(nil))
	u := users.User{ID: uuid.New()}

	a, err := svc.Add(context.Background(), u, "  React ", 0)
	require.NoError(t, err)
	assert.Equal(t, "react", a.Name)
	assert.Equal(t, DefaultProficiency, a.Proficiency)

	b, err := svc.Add(context.Background(), u, "REACT", 5)
	require.NoError(t, err)
	assert.Equal(t, a.SkillID, b.SkillID)
	assert.Len(t, repo.byName, 1)

	list, err := svc.List(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Proficiency)
	assert.Equal(t, 2, p.ensured)

	_, err = svc.Add(context.Background(), u, " ", 3)
	var v ErrValidation
	assert.ErrorAs(t, err, &v)
	_, err = svc.Add(context.Background(), u, "go", 6)
	assert.ErrorAs(t, err, &v)
}

func TestRemove(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &profiles{}, NewExtractor(nil))
	u := users.User{ID: uuid.New()}
	s, err := svc.Add(context.Background(), u, "docker", 2)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), u.ID, s.SkillID))
	list, err := svc.List(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExtractFromResume(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<w:p><w:t>Experienced with Go, Docker and docker compose</w:t></w:p>"))
	require.NoError(t, zw.Close())

	repo := newMemRepo()
	m := &stubModel{reply: `["Go", "Docker", "docker", "Docker Compose"]`}
	svc := NewService(repo, &profiles{}, NewExtractor(m))
	u := users.User{ID: uuid.New()}

	got, err := svc.ExtractFromResume(context.Background(), u, "cv.docx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Docker", "Docker Compose"}, got)
	list, _ := svc.List(context.Background(), u.ID)
	assert.Len(t, list, 3)
	for _, s := range list {
		assert.Equal(t, DefaultProficiency, s.Proficiency)
	}
}

func TestExtractFromResumeRejects(t *testing.T) {
	svc := NewService(newMemRepo(), &profiles{}, NewExtractor(nil))
	u := users.User{ID: uuid.New()}
	var v ErrValidation

	_, err := svc.ExtractFromResume(context.Background(), u, "cv.txt", []byte("hi"))
	assert.ErrorAs(t, err, &v)
	_, err = svc.ExtractFromResume(context.Background(), u, "cv.pdf", make([]byte, MaxResumeBytes+1))
	assert.ErrorAs(t, err, &v)
}

func TestDedupeFoldCaps(t *testing.T) {
	in := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		in = append(in, strings.Repeat("x", i+1))
	}
	assert.Len(t, dedupeFold(in, maxResumeSkills), maxResumeSkills)
}
