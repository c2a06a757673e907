package work

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStages_PoidsSomme100(t *testing.T) {
	total := 0
	for _, s := range Stages() {
		total += s.Weight
	}
	assert.Equal(t, 100, total, "la somme des poids doit faire 100")
}

func TestStages_OrdreEtTerminale(t *testing.T) {
	stages := Stages()
	require.NotEmpty(t, stages)

	for i, s := range stages {
		assert.Equal(t, i, s.OrderIndex, "les étapes doivent être dans l'ordre du flux")
	}
	for _, s := range stages[:len(stages)-1] {
		assert.False(t, s.Terminal, "seule la dernière étape est terminale")
	}
	assert.True(t, stages[len(stages)-1].Terminal)
}

func TestStages_CopieDefensive(t *testing.T) {
	stages := Stages()
	stages[0].Name = "modifié"
	assert.Equal(t, "Réception", Stages()[0].Name)
}

func TestStageByID(t *testing.T) {
	s := StageByID("production")
	require.NotNil(t, s)
	assert.Equal(t, "Production", s.Name)

	assert.Nil(t, StageByID("inconnue"))
}

func TestStageDefault_Existe(t *testing.T) {
	require.NotNil(t, StageByID(StageDefault))
	assert.Equal(t, 0, StageByID(StageDefault).OrderIndex)
}

func TestProgress_Cumule(t *testing.T) {
	assert.Equal(t, 0, Progress("reception"))
	assert.Equal(t, 5, Progress("modelisation"))
	assert.Equal(t, 25, Progress("production"))
	assert.Equal(t, 65, Progress("finition"))
	assert.Equal(t, 85, Progress("controle"))
	assert.Equal(t, 95, Progress("livraison"))
	assert.Equal(t, 0, Progress("inconnue"))
}
