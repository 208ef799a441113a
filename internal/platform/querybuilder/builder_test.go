package querybuilder

import (
	"slices"
	"testing"
)

func TestSelectBuilder_Join(t *testing.T) {
	query, args, err := Select("a.match_id", "a.player_id", "m.kickoff_at").
		From("appearances a").
		Join("JOIN matches m ON m.id = a.match_id").
		Where(Eq("a.player_id", "p1"), Expr("m.finished = ?", true)).
		OrderBy("m.kickoff_at", "m.id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT a.match_id, a.player_id, m.kickoff_at FROM appearances a JOIN matches m ON m.id = a.match_id WHERE a.player_id = $1 AND m.finished = $2 ORDER BY m.kickoff_at, m.id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !slices.Equal(args, []any{"p1", true}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InStrings(t *testing.T) {
	query, args, err := Select("id").
		From("shots").
		Where(InStrings("match_id", []string{"m1", "m2"}), IsNotNull("player_id")).
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM shots WHERE match_id IN ($1, $2) AND player_id IS NOT NULL LIMIT 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, args, _ = Select("id").From("shots").Where(InStrings("match_id", nil)).ToSQL()
	if query != "SELECT id FROM shots WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected empty IN rendering: %s %+v", query, args)
	}
}

func TestSelectBuilder_QuestionFormat(t *testing.T) {
	query, _, err := Select("id", "home_team").
		From("matches").
		Where(Eq("finished", 1), Eq("league", "arg")).
		PlaceholderFormat(Question).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, home_team FROM matches WHERE finished = ? AND league = ?"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		skipped int
		Ignored string `db:"-"`
	}

	query, args, err := InsertModels("referees", []row{{ID: "r1", Name: "Tello"}, {ID: "r2", Name: "Rapallini"}}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO referees (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !slices.Equal(args, []any{"r1", "Tello", "r2", "Rapallini"}) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("referees", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
