package work

import "github.com/dentalcloud/dentalcloud-api/internal/domain/entity"

// defaultStages étapes de production d'un laboratoire de prothèse, dans
// l'ordre du flux. Les poids cumulés donnent l'avancement en pourcentage ;
// leur somme fait 100. Définies dans le code : tous les laboratoires
// partagent le même flux.
var defaultStages = []entity.WorkStage{
	{ID: "reception", Name: "Réception", Description: "Empreinte reçue, travail enregistré", OrderIndex: 0, Weight: 5, Color: "#64748b"},
	{ID: "modelisation", Name: "Modélisation", Description: "Conception du modèle (CAO ou plâtre)", OrderIndex: 1, Weight: 20, Color: "#3b82f6"},
	{ID: "production", Name: "Production", Description: "Usinage, pressée ou stratification", OrderIndex: 2, Weight: 40, Color: "#f59e0b"},
	{ID: "finition", Name: "Finition", Description: "Maquillage, glaçage, polissage", OrderIndex: 3, Weight: 20, Color: "#8b5cf6"},
	{ID: "controle", Name: "Contrôle", Description: "Contrôle qualité avant expédition", OrderIndex: 4, Weight: 10, Color: "#10b981"},
	{ID: "livraison", Name: "Livraison", Description: "Expédié au cabinet", OrderIndex: 5, Weight: 5, Color: "#22c55e", Terminal: true},
}

// StageDefault étape attribuée à tout nouveau bon de livraison.
const StageDefault = "reception"

// Stages renvoie les étapes actives dans l'ordre du flux.
func Stages() []entity.WorkStage {
	out := make([]entity.WorkStage, len(defaultStages))
	copy(out, defaultStages)
	return out
}

// StageByID renvoie l'étape correspondante, nil si inconnue.
func StageByID(id string) *entity.WorkStage {
	for i := range defaultStages {
		if defaultStages[i].ID == id {
			s := defaultStages[i]
			return &s
		}
	}
	return nil
}

// Progress avancement cumulé en pourcentage à l'entrée d'une étape : somme
// des poids des étapes précédentes. Un travail en livraison est à 95, il
// passe à 100 en quittant le tableau.
func Progress(stageID string) int {
	total := 0
	for _, s := range defaultStages {
		if s.ID == stageID {
			return total
		}
		total += s.Weight
	}
	return 0
}
