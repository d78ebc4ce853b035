package scraper

import "github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"

// Fallback holds the static record fields used when every fetch for a source
// fails. Fallback values are configuration data, not logic.
type Fallback struct {
	Description  string
	Requirements string
	Deadline     string
}

// Source describes one scholarship website: where to fetch and what to emit
// when the site is unreachable.
type Source struct {
	Name     string
	Category beasiswa.Category
	// URLs are tried in order; the first page that loads wins.
	URLs     []string
	Fallback Fallback
}

// DefaultSources returns the fixed set of scraped sources in their
// deterministic run order, grouped by category.
func DefaultSources() []Source {
	return []Source{
		{
			Name:     "Program Indonesia Pintar (PIP)",
			Category: beasiswa.CategoryDomestik,
			URLs: []string{
				"https://pip.kemdikbud.go.id/",
				"https://www.kemdikbud.go.id/program-indonesia-pintar",
			},
			Fallback: Fallback{
				Description:  "Program bantuan pendidikan untuk siswa SD, SMP, dan SMA dari keluarga kurang mampu",
				Requirements: "Siswa dari keluarga kurang mampu, memiliki KIP",
				Deadline:     "Berjalan terus",
			},
		},
		{
			Name:     "GrabScholar",
			Category: beasiswa.CategoryDomestik,
			URLs:     []string{"https://grabscholar.com/"},
			Fallback: Fallback{
				Description:  "Platform beasiswa dari Grab untuk siswa Indonesia",
				Requirements: "Siswa aktif SD/SMP/SMA, berprestasi akademik",
				Deadline:     "Tergantung program",
			},
		},
		{
			Name:     "Mentari UMY",
			Category: beasiswa.CategoryDomestik,
			URLs:     []string{"https://umy.ac.id/mentari"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Universitas Muhammadiyah Yogyakarta untuk siswa berprestasi",
				Requirements: "Siswa berprestasi dari keluarga kurang mampu, nilai rata-rata minimal 8.0",
				Deadline:     "Tergantung periode pendaftaran",
			},
		},
		{
			Name:     "Cahaya PLN",
			Category: beasiswa.CategoryDomestik,
			URLs:     []string{"https://web.pln.co.id/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari PLN untuk siswa berprestasi",
				Requirements: "Siswa berprestasi dari keluarga kurang mampu",
				Deadline:     "Tergantung program",
			},
		},
		{
			Name:     "YES Program (Youth Exchange and Study)",
			Category: beasiswa.CategoryInternasional,
			URLs:     []string{"https://yesprograms.org/"},
			Fallback: Fallback{
				Description:  "Program pertukaran pelajar ke Amerika Serikat untuk siswa SMA",
				Requirements: "Siswa SMA kelas 10-11, nilai minimal 8.0, kemampuan bahasa Inggris",
				Deadline:     "Biasanya Oktober-November",
			},
		},
		{
			Name:     "ASEAN Scholarship Singapura",
			Category: beasiswa.CategoryInternasional,
			URLs:     []string{"https://www.moe.gov.sg/financial-matters/awards-scholarships/asean-scholarships"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Pemerintah Singapura untuk siswa ASEAN",
				Requirements: "Siswa SMA kelas 10-11, nilai minimal 8.5, kemampuan bahasa Inggris",
				Deadline:     "Biasanya Mei-Juni",
			},
		},
		{
			Name:     "SPH Breakthrough Scholarship",
			Category: beasiswa.CategoryInternasional,
			URLs:     []string{"https://sph.edu/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Sekolah Pelita Harapan untuk siswa berprestasi",
				Requirements: "Siswa SMP/SMA berprestasi dengan kemampuan bahasa Inggris yang baik",
				Deadline:     "Tergantung periode pendaftaran",
			},
		},
		{
			Name:     "JASSO Exchange Program",
			Category: beasiswa.CategoryInternasional,
			URLs:     []string{"https://www.jasso.go.jp/en/"},
			Fallback: Fallback{
				Description:  "Program pertukaran pelajar ke Jepang",
				Requirements: "Siswa SMA dengan kemampuan bahasa Jepang/Inggris",
				Deadline:     "Tergantung program",
			},
		},
		{
			Name:     "Kartu Indonesia Pintar (KIP) Kuliah",
			Category: beasiswa.CategoryPTDalamNegeri,
			URLs:     []string{"https://kip-kuliah.kemdikbud.go.id/"},
			Fallback: Fallback{
				Description:  "Program bantuan biaya pendidikan untuk mahasiswa dari keluarga kurang mampu",
				Requirements: "Lulusan SMA/SMK dari keluarga kurang mampu",
				Deadline:     "Biasanya Januari-Maret",
			},
		},
		{
			Name:     "Bidikmisi",
			Category: beasiswa.CategoryPTDalamNegeri,
			URLs:     []string{"https://bidikmisi.belmawa.ristekdikti.go.id/"},
			Fallback: Fallback{
				Description:  "Program bantuan biaya pendidikan untuk mahasiswa berprestasi dari keluarga kurang mampu",
				Requirements: "Lulusan SMA/SMK dari keluarga kurang mampu dengan prestasi akademik",
				Deadline:     "Biasanya Januari-Maret",
			},
		},
		{
			Name:     "Beasiswa Unggulan",
			Category: beasiswa.CategoryPTDalamNegeri,
			URLs:     []string{"https://beasiswaunggulan.kemdikbud.go.id/"},
			Fallback: Fallback{
				Description:  "Program beasiswa untuk mahasiswa berprestasi tinggi",
				Requirements: "Mahasiswa dengan IPK minimal 3.5 dan prestasi akademik/non-akademik",
				Deadline:     "Tergantung periode pendaftaran",
			},
		},
		{
			Name:     "LPDP (Lembaga Pengelola Dana Pendidikan)",
			Category: beasiswa.CategoryPTDalamNegeri,
			URLs:     []string{"https://lpdp.kemenkeu.go.id/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Kementerian Keuangan untuk pendidikan S2/S3",
				Requirements: "Lulusan S1 dengan IPK minimal 3.0, usia maksimal 35 tahun",
				Deadline:     "Tergantung periode pendaftaran",
			},
		},
		{
			Name:     "Beasiswa KOMINFO",
			Category: beasiswa.CategoryPTDalamNegeri,
			URLs:     []string{"https://beasiswa.kominfo.go.id/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Kementerian Komunikasi dan Informatika",
				Requirements: "Mahasiswa bidang teknologi informasi dan komunikasi",
				Deadline:     "Tergantung program",
			},
		},
		{
			Name:     "MEXT Scholarship Jepang",
			Category: beasiswa.CategoryPTLuarNegeri,
			URLs:     []string{"https://www.id.emb-japan.go.jp/sch.html"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Pemerintah Jepang untuk studi S1, S2, dan S3",
				Requirements: "Lulusan SMA/S1/S2, usia maksimal 24/35/35 tahun, kemampuan bahasa Jepang/Inggris",
				Deadline:     "Biasanya April-Mei",
			},
		},
		{
			Name:     "Chevening Scholarship",
			Category: beasiswa.CategoryPTLuarNegeri,
			URLs:     []string{"https://www.chevening.org/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Pemerintah Inggris untuk studi S2 di Inggris",
				Requirements: "Lulusan S1 dengan pengalaman kerja minimal 2 tahun, kemampuan bahasa Inggris",
				Deadline:     "Biasanya November",
			},
		},
		{
			Name:     "Fulbright Scholarship",
			Category: beasiswa.CategoryPTLuarNegeri,
			URLs:     []string{"https://www.aminef.or.id/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Pemerintah Amerika Serikat untuk studi di AS",
				Requirements: "Lulusan S1/S2 dengan IPK minimal 3.0, kemampuan bahasa Inggris",
				Deadline:     "Biasanya Februari-April",
			},
		},
		{
			Name:     "Australia Awards Indonesia",
			Category: beasiswa.CategoryPTLuarNegeri,
			URLs:     []string{"https://www.australiaawardsindonesia.org/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Pemerintah Australia untuk studi di Australia",
				Requirements: "Lulusan S1 dengan pengalaman kerja, kemampuan bahasa Inggris",
				Deadline:     "Biasanya Februari-April",
			},
		},
		{
			Name:     "Erasmus+ Scholarship",
			Category: beasiswa.CategoryPTLuarNegeri,
			URLs:     []string{"https://erasmus-plus.ec.europa.eu/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Uni Eropa untuk studi di negara-negara Eropa",
				Requirements: "Mahasiswa S1/S2/S3 dengan kemampuan bahasa Inggris",
				Deadline:     "Tergantung program dan universitas",
			},
		},
		{
			Name:     "New Zealand Scholarships",
			Category: beasiswa.CategoryPTLuarNegeri,
			URLs:     []string{"https://www.nzscholarships.govt.nz/"},
			Fallback: Fallback{
				Description:  "Program beasiswa dari Pemerintah Selandia Baru",
				Requirements: "Lulusan S1 dengan pengalaman kerja, kemampuan bahasa Inggris",
				Deadline:     "Biasanya Februari-Maret",
			},
		},
	}
}
