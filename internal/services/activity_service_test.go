package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mergington/school-management/internal/models"
)

type stubClubRepo struct {
	all    []*models.Club
	byName map[string]*models.Club
	err    error
}

func (s *stubClubRepo) GetAll(ctx context.Context) ([]*models.Club, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.all, nil
}

func (s *stubClubRepo) GetByName(ctx context.Context, name string) (*models.Club, error) {
	if s.err != nil {
		return nil, s.err
	}
	club, ok := s.byName[name]
	if !ok {
		return nil, models.ErrActivityNotFound
	}
	return club, nil
}

type stubStudentRepo struct {
	students map[string]*models.Student
	nextID   int64
	created  []string
}

func (s *stubStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	student, ok := s.students[email]
	if !ok {
		return nil, models.ErrStudentNotFound
	}
	return student, nil
}

func (s *stubStudentRepo) GetOrCreate(ctx context.Context, email string) (int64, error) {
	if student, ok := s.students[email]; ok {
		return student.ID, nil
	}
	if s.students == nil {
		s.students = make(map[string]*models.Student)
	}
	s.nextID++
	s.students[email] = &models.Student{ID: s.nextID, Email: email}
	s.created = append(s.created, email)
	return s.nextID, nil
}

type membershipKey struct {
	clubID    int64
	studentID int64
}

type stubMembershipRepo struct {
	registered  map[membershipKey]bool
	registerErr error
}

func (s *stubMembershipRepo) IsRegistered(ctx context.Context, clubID, studentID int64) (bool, error) {
	return s.registered[membershipKey{clubID, studentID}], nil
}

func (s *stubMembershipRepo) Register(ctx context.Context, clubID, studentID int64) error {
	if s.registerErr != nil {
		return s.registerErr
	}
	if s.registered == nil {
		s.registered = make(map[membershipKey]bool)
	}
	s.registered[membershipKey{clubID, studentID}] = true
	return nil
}

func (s *stubMembershipRepo) Unregister(ctx context.Context, clubID, studentID int64) (int64, error) {
	key := membershipKey{clubID, studentID}
	if !s.registered[key] {
		return 0, nil
	}
	delete(s.registered, key)
	return 1, nil
}

func chessClub() *models.Club {
	return &models.Club{
		ID:              1,
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu"},
	}
}

func TestActivityService_ListActivities_MapsClubsByName(t *testing.T) {
	clubRepo := &stubClubRepo{all: []*models.Club{
		chessClub(),
		{ID: 9, Name: "Debate Team", MaxParticipants: 12},
	}}
	service := NewActivityService(clubRepo, &stubStudentRepo{}, &stubMembershipRepo{})

	activities, err := service.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("unexpected error listing activities: %v", err)
	}

	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}

	chess, ok := activities["Chess Club"]
	if !ok {
		t.Fatal("activities must be keyed by club name")
	}
	if chess.MaxParticipants != 12 || len(chess.Participants) != 1 {
		t.Errorf("chess club detail not mapped: %+v", chess)
	}

	debate := activities["Debate Team"]
	if debate.Participants == nil {
		t.Error("a club without members must report an empty participant list, not null")
	}
}

func TestActivityService_SignUp_NewStudent_CreatesAndRegisters(t *testing.T) {
	clubRepo := &stubClubRepo{byName: map[string]*models.Club{"Chess Club": chessClub()}}
	studentRepo := &stubStudentRepo{}
	membershipRepo := &stubMembershipRepo{}
	service := NewActivityService(clubRepo, studentRepo, membershipRepo)

	err := service.SignUp(context.Background(), "Chess Club", "newstudent@mergington.edu")
	if err != nil {
		t.Fatalf("unexpected error signing up: %v", err)
	}

	if len(studentRepo.created) != 1 || studentRepo.created[0] != "newstudent@mergington.edu" {
		t.Errorf("student row should be created on first signup, created=%v", studentRepo.created)
	}
	student := studentRepo.students["newstudent@mergington.edu"]
	if !membershipRepo.registered[membershipKey{1, student.ID}] {
		t.Error("membership must be recorded after signup")
	}
}

func TestActivityService_SignUp_UnknownActivity_ReturnsNotFound(t *testing.T) {
	clubRepo := &stubClubRepo{byName: map[string]*models.Club{}}
	studentRepo := &stubStudentRepo{}
	service := NewActivityService(clubRepo, studentRepo, &stubMembershipRepo{})

	err := service.SignUp(context.Background(), "Knitting Club", "emma@mergington.edu")
	if !errors.Is(err, models.ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
	if len(studentRepo.created) != 0 {
		t.Errorf("no student row may be created for an unknown activity, created=%v", studentRepo.created)
	}
}

func TestActivityService_SignUp_AlreadyRegistered_ReturnsError(t *testing.T) {
	clubRepo := &stubClubRepo{byName: map[string]*models.Club{"Chess Club": chessClub()}}
	studentRepo := &stubStudentRepo{students: map[string]*models.Student{
		"michael@mergington.edu": {ID: 7, Email: "michael@mergington.edu"},
	}}
	membershipRepo := &stubMembershipRepo{registered: map[membershipKey]bool{
		{1, 7}: true,
	}}
	service := NewActivityService(clubRepo, studentRepo, membershipRepo)

	err := service.SignUp(context.Background(), "Chess Club", "michael@mergington.edu")
	if !errors.Is(err, models.ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestActivityService_SignUp_DuplicateInsertRace_ReturnsAlreadyRegistered(t *testing.T) {
	clubRepo := &stubClubRepo{byName: map[string]*models.Club{"Chess Club": chessClub()}}
	membershipRepo := &stubMembershipRepo{registerErr: models.ErrAlreadyRegistered}
	service := NewActivityService(clubRepo, &stubStudentRepo{}, membershipRepo)

	err := service.SignUp(context.Background(), "Chess Club", "emma@mergington.edu")
	if !errors.Is(err, models.ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered from the insert race, got %v", err)
	}
}

func TestActivityService_Unregister_RegisteredStudent_Removes(t *testing.T) {
	clubRepo := &stubClubRepo{byName: map[string]*models.Club{"Chess Club": chessClub()}}
	studentRepo := &stubStudentRepo{students: map[string]*models.Student{
		"michael@mergington.edu": {ID: 7, Email: "michael@mergington.edu"},
	}}
	membershipRepo := &stubMembershipRepo{registered: map[membershipKey]bool{
		{1, 7}: true,
	}}
	service := NewActivityService(clubRepo, studentRepo, membershipRepo)

	err := service.Unregister(context.Background(), "Chess Club", "michael@mergington.edu")
	if err != nil {
		t.Fatalf("unexpected error unregistering: %v", err)
	}
	if membershipRepo.registered[membershipKey{1, 7}] {
		t.Error("membership must be removed after unregister")
	}
}

func TestActivityService_Unregister_UnknownActivity_ReturnsNotFound(t *testing.T) {
	service := NewActivityService(
		&stubClubRepo{byName: map[string]*models.Club{}},
		&stubStudentRepo{},
		&stubMembershipRepo{},
	)

	err := service.Unregister(context.Background(), "Knitting Club", "emma@mergington.edu")
	if !errors.Is(err, models.ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestActivityService_Unregister_UnknownStudent_ReturnsNotRegistered(t *testing.T) {
	clubRepo := &stubClubRepo{byName: map[string]*models.Club{"Chess Club": chessClub()}}
	studentRepo := &stubStudentRepo{}
	service := NewActivityService(clubRepo, studentRepo, &stubMembershipRepo{})

	err := service.Unregister(context.Background(), "Chess Club", "ghost@mergington.edu")
	if !errors.Is(err, models.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
	if len(studentRepo.created) != 0 {
		t.Errorf("unregister must never create student rows, created=%v", studentRepo.created)
	}
}

func TestActivityService_Unregister_NotMember_ReturnsNotRegistered(t *testing.T) {
	clubRepo := &stubClubRepo{byName: map[string]*models.Club{"Chess Club": chessClub()}}
	studentRepo := &stubStudentRepo{students: map[string]*models.Student{
		"emma@mergington.edu": {ID: 3, Email: "emma@mergington.edu"},
	}}
	service := NewActivityService(clubRepo, studentRepo, &stubMembershipRepo{})

	err := service.Unregister(context.Background(), "Chess Club", "emma@mergington.edu")
	if !errors.Is(err, models.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}
