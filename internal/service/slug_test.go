package service

import "testing"

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Estatuto Social", "estatuto-social"},
		{"Prestação de Contas 2024", "prestacao-de-contas-2024"},
		{"Edital de Licitação nº 04/2025", "edital-de-licitacao-n-04-2025"},
		{"  Título   com   espaços  ", "titulo-com-espacos"},
		{"Convênio/Acordo — Cooperação", "convenio-acordo-cooperacao"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := DeriveSlug(tt.title); got != tt.want {
				t.Errorf("DeriveSlug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
