package entity

// WorkStage étape de production du tableau Kanban. Les étapes par défaut
// sont définies dans le code et non en base.
type WorkStage struct {
	ID          string
	Name        string
	Description string
	OrderIndex  int
	Weight      int // poids dans le calcul d'avancement (somme = 100)
	Color       string
	IsActive    bool
	Terminal    bool // étape finale : le travail sort du tableau
}
