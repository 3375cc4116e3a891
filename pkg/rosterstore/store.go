package rosterstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/camcaswell/CJ-team-forming/pkg/core/model"
)

// File names within the store directory. The contract with manual review is
// these flat CSV files: organizers edit them between pipeline steps.
const (
	QualifiedFile         = "qualified.csv"
	ConfirmedFile         = "confirmed.csv"
	BlacklistFile         = "blacklist.csv"
	ManualUpsertionsFile  = "manual_upsertions.csv"
	FinalParticipantsFile = "final_participants.csv"
	FinalTeamsFile        = "final_teams.csv"
)

var qualifiedHeaders = []string{
	"discord_id", "discord_username", "age", "timezone",
	"python_experience", "git_experience", "team_leader", "codejam_experience",
}

var confirmedHeaders = []string{"discord_id", "github_username"}

var participantHeaders = []string{
	"discord_id", "discord_username", "github_username", "timezone",
	"python_experience", "git_experience", "age", "codejam_experience",
	"team_leader", "lead_priority",
}

var finalTeamHeaders = []string{
	"team", "is_leader", "discord_id", "discord_username", "github_username",
	"timezone", "experience", "lead_priority",
}

// QualifiedRow is one raw qualifier submission. Values are the literal form
// answers; scoring happens when the final participant list is built.
type QualifiedRow struct {
	DiscordID         string
	DiscordUsername   string
	Age               string
	Timezone          string
	PythonExperience  string
	GitExperience     string
	TeamLeader        string
	CodejamExperience string
}

// ConfirmedRow is one confirmed participant.
type ConfirmedRow struct {
	DiscordID      string
	GithubUsername string
}

// ParticipantRow is one row of the final participants file (and of the
// manual upsertions file, which shares its headers). Experience fields hold
// ordinal scores at this stage, not answer text.
type ParticipantRow struct {
	DiscordID         string
	DiscordUsername   string
	GithubUsername    string
	Timezone          string
	PythonExperience  string
	GitExperience     string
	Age               string
	CodejamExperience string
	TeamLeader        string
	LeadPriority      string
}

// FinalTeamRow is one member line of the final teams file.
type FinalTeamRow struct {
	Team            int
	IsLeader        bool
	DiscordID       int64
	DiscordUsername string
	GithubUsername  string
	Timezone        float64
	Experience      int
	LeadPriority    int
}

// Store reads and writes the pipeline's CSV files under a single directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteQualified writes raw qualifier submissions. Rows are not filtered or
// deduplicated; that happens when the final participant list is built.
func (s *Store) WriteQualified(rows []QualifiedRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.DiscordID, r.DiscordUsername, r.Age, r.Timezone,
			r.PythonExperience, r.GitExperience, r.TeamLeader, r.CodejamExperience,
		}
	}
	return s.writeFile(QualifiedFile, qualifiedHeaders, records)
}

// ReadQualified reads raw qualifier submissions.
func (s *Store) ReadQualified() ([]QualifiedRow, error) {
	records, err := s.readFile(QualifiedFile, qualifiedHeaders)
	if err != nil {
		return nil, err
	}
	rows := make([]QualifiedRow, len(records))
	for i, rec := range records {
		rows[i] = QualifiedRow{
			DiscordID:         rec[0],
			DiscordUsername:   rec[1],
			Age:               rec[2],
			Timezone:          rec[3],
			PythonExperience:  rec[4],
			GitExperience:     rec[5],
			TeamLeader:        rec[6],
			CodejamExperience: rec[7],
		}
	}
	return rows, nil
}

// WriteConfirmed writes the confirmed participant list.
func (s *Store) WriteConfirmed(rows []ConfirmedRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{r.DiscordID, r.GithubUsername}
	}
	return s.writeFile(ConfirmedFile, confirmedHeaders, records)
}

// ReadConfirmed reads the confirmed participant list.
func (s *Store) ReadConfirmed() ([]ConfirmedRow, error) {
	records, err := s.readFile(ConfirmedFile, confirmedHeaders)
	if err != nil {
		return nil, err
	}
	rows := make([]ConfirmedRow, len(records))
	for i, rec := range records {
		rows[i] = ConfirmedRow{DiscordID: rec[0], GithubUsername: rec[1]}
	}
	return rows, nil
}

// ReadBlacklist returns the blacklisted Discord IDs. A missing file means an
// empty blacklist.
func (s *Store) ReadBlacklist() (map[int64]bool, error) {
	f, err := os.Open(s.path(BlacklistFile))
	if errors.Is(err, fs.ErrNotExist) {
		return map[int64]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", BlacklistFile, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", BlacklistFile, err)
	}
	if len(records) == 0 {
		return map[int64]bool{}, nil
	}

	idCol := -1
	for i, h := range records[0] {
		if h == "discord_id" {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("%s has no discord_id column", BlacklistFile)
	}

	blacklist := make(map[int64]bool, len(records)-1)
	for _, rec := range records[1:] {
		id, err := strconv.ParseInt(rec[idCol], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad discord_id %q in %s: %w", rec[idCol], BlacklistFile, err)
		}
		blacklist[id] = true
	}
	return blacklist, nil
}

// ReadUpsertions reads the manual upsertions file. A missing file is normal:
// it means no manual adjustments this jam.
func (s *Store) ReadUpsertions() ([]ParticipantRow, error) {
	if _, err := os.Stat(s.path(ManualUpsertionsFile)); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return s.readParticipantRows(ManualUpsertionsFile)
}

// WriteFinalParticipants writes the reviewed participant list the
// team-forming run will consume.
func (s *Store) WriteFinalParticipants(rows []ParticipantRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.DiscordID, r.DiscordUsername, r.GithubUsername, r.Timezone,
			r.PythonExperience, r.GitExperience, r.Age, r.CodejamExperience,
			r.TeamLeader, r.LeadPriority,
		}
	}
	return s.writeFile(FinalParticipantsFile, participantHeaders, records)
}

// ReadFinalParticipants reads the reviewed participant list.
func (s *Store) ReadFinalParticipants() ([]ParticipantRow, error) {
	return s.readParticipantRows(FinalParticipantsFile)
}

func (s *Store) readParticipantRows(name string) ([]ParticipantRow, error) {
	records, err := s.readFile(name, participantHeaders)
	if err != nil {
		return nil, err
	}
	rows := make([]ParticipantRow, len(records))
	for i, rec := range records {
		rows[i] = ParticipantRow{
			DiscordID:         rec[0],
			DiscordUsername:   rec[1],
			GithubUsername:    rec[2],
			Timezone:          rec[3],
			PythonExperience:  rec[4],
			GitExperience:     rec[5],
			Age:               rec[6],
			CodejamExperience: rec[7],
			TeamLeader:        rec[8],
			LeadPriority:      rec[9],
		}
	}
	return rows, nil
}

// WriteFinalTeams writes the formed teams, one member per row, leaders
// first within each team. Unassigned participants appear with team -1.
func (s *Store) WriteFinalTeams(rows []FinalTeamRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.Itoa(r.Team),
			strconv.FormatBool(r.IsLeader),
			strconv.FormatInt(r.DiscordID, 10),
			r.DiscordUsername,
			r.GithubUsername,
			strconv.FormatFloat(r.Timezone, 'g', -1, 64),
			strconv.Itoa(r.Experience),
			strconv.Itoa(r.LeadPriority),
		}
	}
	return s.writeFile(FinalTeamsFile, finalTeamHeaders, records)
}

// ToParticipant converts a reviewed row into the core's participant record.
func (r ParticipantRow) ToParticipant() (*model.Participant, error) {
	id, err := strconv.ParseInt(r.DiscordID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad discord_id %q: %w", r.DiscordID, err)
	}
	tz, err := ParseTimezone(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("participant %d: %w", id, err)
	}
	pyExp, err := strconv.Atoi(r.PythonExperience)
	if err != nil {
		return nil, fmt.Errorf("participant %d: bad python_experience %q: %w", id, r.PythonExperience, err)
	}
	gitExp, err := strconv.Atoi(r.GitExperience)
	if err != nil {
		return nil, fmt.Errorf("participant %d: bad git_experience %q: %w", id, r.GitExperience, err)
	}
	leadPriority, err := strconv.Atoi(r.LeadPriority)
	if err != nil {
		return nil, fmt.Errorf("participant %d: bad lead_priority %q: %w", id, r.LeadPriority, err)
	}

	return &model.Participant{
		ID:           id,
		Timezone:     tz,
		Experience:   pyExp + gitExp,
		LeadPriority: leadPriority,
		Name:         r.DiscordUsername,
		GithubName:   r.GithubUsername,
	}, nil
}

func (s *Store) writeFile(name string, headers []string, records [][]string) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *Store) readFile(name string, headers []string) ([][]string, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(headers)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}
	for i, h := range records[0] {
		if h != headers[i] {
			return nil, fmt.Errorf("%s has unexpected header %q, want %q", name, records[0][i], headers[i])
		}
	}
	return records[1:], nil
}
