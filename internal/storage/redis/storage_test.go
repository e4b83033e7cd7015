package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearch/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	_ = s.storage.SavePlayer(s.ctx, guestPlayer)
	_ = s.storage.SavePlayer(s.ctx, registeredPlayer)

	// Check that guest has TTL and registered doesn't
	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	grid := model.NewGrid(3)
	s.Require().NoError(grid.Set(model.Position{Row: 0, Col: 0}, 'Ä'))
	selection := model.NewSelection()
	selection.Add(model.Position{Row: 0, Col: 0})

	game := &model.Game{
		ID:          "game-1",
		PlayerID:    "player-1",
		State:       model.GameStatePlaying,
		Seed:        42,
		Grid:        grid,
		Outstanding: []string{"ÄB"},
		Selection:   selection,
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.State, retrieved.State)
	s.Equal(int64(42), retrieved.Seed)
	s.Equal('Ä', retrieved.Grid.Letter(model.Position{Row: 0, Col: 0}))
	s.Equal([]string{"ÄB"}, retrieved.Outstanding)
	s.True(retrieved.Selection.Contains(model.Position{Row: 0, Col: 0}))
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameTTL() {
	game := &model.Game{ID: "game-1", State: model.GameStatePlaying}
	_ = s.storage.SaveGame(s.ctx, game)

	ttl := s.mini.TTL(gameKey(game.ID))
	s.True(ttl > 0, "Game should have TTL")
}

// Game history tests

func (s *StorageSuite) TestGameSummariesNewestFirst() {
	for _, id := range []model.GameID{"game-1", "game-2", "game-3"} {
		err := s.storage.SaveGameSummary(s.ctx, &model.GameSummary{ID: id, PlayerID: "player-1", FinalTime: "00:01:00:00"})
		s.Require().NoError(err)
	}

	summaries, err := s.storage.ListGameSummaries(s.ctx, "player-1", 2)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(model.GameID("game-3"), summaries[0].ID)
	s.Equal(model.GameID("game-2"), summaries[1].ID)
}

func (s *StorageSuite) TestGameSummariesTrimmed() {
	s.storage.cfg.HistoryLength = 2
	for _, id := range []model.GameID{"game-1", "game-2", "game-3"} {
		_ = s.storage.SaveGameSummary(s.ctx, &model.GameSummary{ID: id, PlayerID: "player-1"})
	}

	summaries, err := s.storage.ListGameSummaries(s.ctx, "player-1", 0)
	s.Require().NoError(err)
	s.Len(summaries, 2)
}

func (s *StorageSuite) TestGameSummariesEmpty() {
	summaries, err := s.storage.ListGameSummaries(s.ctx, "nobody", 10)
	s.Require().NoError(err)
	s.Empty(summaries)
}

// Record tests

func (s *StorageSuite) TestSetAndGetValue() {
	err := s.storage.SetValue(s.ctx, "player-1:showWords", "false")
	s.Require().NoError(err)

	value, err := s.storage.GetValue(s.ctx, "player-1:showWords")
	s.Require().NoError(err)
	s.Equal("false", value)
}

func (s *StorageSuite) TestGetValueNotFound() {
	_, err := s.storage.GetValue(s.ctx, "missing")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *StorageSuite) TestRecordNoTTL() {
	_ = s.storage.SetValue(s.ctx, "player-1:bestTime", "00:01:10")

	ttl := s.mini.TTL(recordKey("player-1:bestTime"))
	s.Equal(time.Duration(0), ttl, "Records should not have TTL")
}

// Word list tests

func (s *StorageSuite) TestSaveAndGetWordList() {
	words := []string{"HAUS", "BAUM", "KÄSE"}

	err := s.storage.SaveWordList(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetWordList(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestGetWordListNotLoaded() {
	_, err := s.storage.GetWordList(s.ctx)
	s.ErrorIs(err, model.ErrWordListNotLoaded)
}

func (s *StorageSuite) TestSaveWordListReplacesExisting() {
	_ = s.storage.SaveWordList(s.ctx, []string{"HAUS", "BAUM"})
	_ = s.storage.SaveWordList(s.ctx, []string{"MAUS"})

	retrieved, err := s.storage.GetWordList(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"MAUS"}, retrieved)
}
