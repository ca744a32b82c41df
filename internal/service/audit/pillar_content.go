package audit

// pillarContent is the narrative material attached to a pillar. It feeds the
// insight, SWOT, action plan and EWS templates.
type pillarContent struct {
	Focus       string
	Aktivitas   string
	Output      string
	Risiko      string
	SaranCepat  string
	Opportunity string
}

var pillarContents = map[int]pillarContent{
	1: {
		Focus:       "kejelasan arah karier dan tujuan pribadi",
		Aktivitas:   "Susun peta karier 12 bulan dan review bersama atasan setiap bulan",
		Output:      "Dokumen peta karier dengan 3 milestone terukur",
		Risiko:      "Kehilangan arah dan motivasi jangka panjang",
		SaranCepat:  "Tetapkan satu tujuan kuartal ini dan tuliskan alasan pribadinya",
		Opportunity: "Arah karier yang jelas mempercepat kesiapan naik level",
	},
	2: {
		Focus:       "kejujuran dan kepatuhan terhadap aturan",
		Aktivitas:   "Ikuti refresher kode etik dan lakukan self-audit transaksi mingguan",
		Output:      "Nol temuan kepatuhan selama periode rencana",
		Risiko:      "Pelanggaran kepatuhan yang merusak kepercayaan nasabah",
		SaranCepat:  "Minta compliance officer mereview 5 transaksi terakhir",
		Opportunity: "Reputasi bersih memperkuat posisi dalam evaluasi ProDem",
	},
	3: {
		Focus:       "ketepatan waktu dan kepatuhan ritme kerja",
		Aktivitas:   "Terapkan jadwal harian tetap untuk prospek, follow-up dan laporan",
		Output:      "Kehadiran dan laporan harian 100% tepat waktu",
		Risiko:      "Ritme kerja tidak stabil sehingga pipeline nasabah mengering",
		SaranCepat:  "Kunci 2 jam prospek setiap pagi di kalender",
		Opportunity: "Disiplin yang stabil menjadi contoh bagi tim",
	},
	4: {
		Focus:       "realisasi margin pribadi terhadap target level",
		Aktivitas:   "Fokus pada 10 nasabah dengan potensi margin tertinggi dan jadwalkan review portofolio",
		Output:      "Realisasi margin pribadi minimal 90% target kuartal",
		Risiko:      "Margin pribadi di bawah target mengancam status level",
		SaranCepat:  "Hubungi 5 nasabah aktif teratas minggu ini untuk peluang top-up",
		Opportunity: "Momentum margin pribadi bisa dijadikan dasar pengajuan promosi",
	},
	5: {
		Focus:       "akuisisi nasabah baru secara pribadi",
		Aktivitas:   "Jalankan program referral dan minimal 3 presentasi produk per minggu",
		Output:      "Nasabah baru sesuai target NA kuartal",
		Risiko:      "Basis nasabah menyusut dan margin masa depan turun",
		SaranCepat:  "Minta 2 referral dari nasabah paling puas minggu ini",
		Opportunity: "Pertumbuhan NA pribadi membuka ruang margin kuartal berikutnya",
	},
	6: {
		Focus:       "pertumbuhan margin yang dihasilkan tim",
		Aktivitas:   "Review target margin per anggota tim dan lakukan joint-visit untuk nasabah besar",
		Output:      "Margin tim mencapai target level dengan kontribusi merata",
		Risiko:      "Ketergantungan pada sedikit anggota tim untuk margin",
		SaranCepat:  "Adakan huddle margin tim dua kali seminggu",
		Opportunity: "Tren margin tim yang naik menunjukkan kesiapan memimpin struktur lebih besar",
	},
	7: {
		Focus:       "rekrutmen dan kelengkapan struktur tim",
		Aktivitas:   "Jalankan pipeline rekrutmen dengan target kandidat mingguan",
		Output:      "Struktur tim memenuhi syarat minimal level berikutnya",
		Risiko:      "Struktur tim tidak memenuhi syarat sehingga level tidak dapat dipertahankan",
		SaranCepat:  "Identifikasi 3 kandidat rekrutmen dari jaringan nasabah",
		Opportunity: "Struktur tim yang bertumbuh memperpendek jalan menuju promosi",
	},
	8: {
		Focus:       "produktivitas NA per anggota tim",
		Aktivitas:   "Tetapkan target NA individual dan lakukan coaching mingguan untuk anggota di bawah rata-rata",
		Output:      "Rasio NA per kepala sesuai target level",
		Risiko:      "Anggota tim tidak produktif dan berisiko keluar",
		SaranCepat:  "Pasangkan anggota tim terlemah dengan mentor minggu ini",
		Opportunity: "Produktivitas tim yang naik melipatgandakan hasil tanpa menambah headcount",
	},
	9: {
		Focus:       "kejelasan komunikasi dengan nasabah dan tim",
		Aktivitas:   "Latih teknik presentasi dan minta umpan balik setelah setiap meeting penting",
		Output:      "Skor umpan balik komunikasi minimal 4 dari 5",
		Risiko:      "Miskomunikasi yang memicu komplain nasabah",
		SaranCepat:  "Rangkum setiap meeting dalam 3 poin tertulis ke peserta",
		Opportunity: "Komunikasi yang kuat memperluas pengaruh di cabang",
	},
	10: {
		Focus:       "kemampuan memimpin dan memberi arah",
		Aktivitas:   "Pimpin rapat mingguan dengan agenda, target dan tindak lanjut yang jelas",
		Output:      "Notulen rapat mingguan dengan tindak lanjut tuntas 80%",
		Risiko:      "Tim kehilangan arah dan semangat",
		SaranCepat:  "Sampaikan satu prioritas tim yang jelas minggu ini",
		Opportunity: "Kepemimpinan yang diakui tim memperkuat kandidasi level berikutnya",
	},
	11: {
		Focus:       "coaching dan pengembangan anggota tim",
		Aktivitas:   "Jadwalkan sesi coaching 1-on-1 dua mingguan untuk setiap anggota",
		Output:      "Rencana pengembangan individu untuk seluruh anggota tim",
		Risiko:      "Anggota baru gagal berkembang dan turnover meningkat",
		SaranCepat:  "Lakukan satu sesi coaching 30 menit dengan anggota terbaru",
		Opportunity: "Kemampuan coaching mencetak pemimpin baru dalam struktur",
	},
	12: {
		Focus:       "pengelolaan waktu dan prioritas",
		Aktivitas:   "Gunakan time-blocking dan evaluasi penggunaan waktu setiap Jumat",
		Output:      "Minimal 60% waktu kerja untuk aktivitas penghasil margin",
		Risiko:      "Aktivitas administratif menggerus waktu prospek",
		SaranCepat:  "Catat penggunaan waktu selama 3 hari untuk menemukan kebocoran",
		Opportunity: "Waktu yang terkelola membuka kapasitas untuk coaching tim",
	},
	13: {
		Focus:       "kemampuan menyelesaikan masalah nasabah dan tim",
		Aktivitas:   "Dokumentasikan kasus sulit dan solusinya dalam log pembelajaran",
		Output:      "Log 10 kasus dengan solusi dan pelajaran",
		Risiko:      "Masalah berulang yang menurunkan retensi nasabah",
		SaranCepat:  "Selesaikan satu komplain tertunda dalam 48 jam",
		Opportunity: "Pemecahan masalah yang cepat meningkatkan loyalitas nasabah",
	},
	14: {
		Focus:       "konsistensi pencapaian margin antar kuartal",
		Aktivitas:   "Bangun pipeline bergulir agar pencapaian tidak bergantung pada satu bulan",
		Output:      "Target margin gabungan tercapai di setiap kuartal",
		Risiko:      "Kinerja naik turun yang sulit diprediksi manajemen",
		SaranCepat:  "Tetapkan target margin bulanan, bukan hanya kuartalan",
		Opportunity: "Kinerja yang konsisten memperkuat kepercayaan manajemen",
	},
	15: {
		Focus:       "kolaborasi lintas tim dan cabang",
		Aktivitas:   "Ambil peran aktif dalam satu proyek lintas tim setiap bulan",
		Output:      "Kontribusi terdokumentasi pada proyek bersama",
		Risiko:      "Bekerja terisolasi dan kehilangan dukungan cabang",
		SaranCepat:  "Tawarkan bantuan pada satu rekan tim minggu ini",
		Opportunity: "Kolaborasi membuka akses ke nasabah dan sumber daya baru",
	},
	16: {
		Focus:       "adaptasi terhadap perubahan pasar dan cara kerja baru",
		Aktivitas:   "Uji satu pendekatan prospek baru setiap bulan dan ukur hasilnya",
		Output:      "Laporan eksperimen bulanan dengan hasil terukur",
		Risiko:      "Tertinggal saat kondisi pasar berubah",
		SaranCepat:  "Pelajari satu fitur atau produk baru minggu ini",
		Opportunity: "Inovasi cara kerja memberi keunggulan di pasar yang berubah",
	},
	17: {
		Focus:       "komitmen belajar dan pengembangan diri",
		Aktivitas:   "Selesaikan satu pelatihan atau sertifikasi yang relevan",
		Output:      "Sertifikat atau ringkasan pembelajaran yang dipresentasikan ke tim",
		Risiko:      "Kompetensi stagnan dibanding tuntutan level",
		SaranCepat:  "Alokasikan 30 menit belajar setiap hari kerja",
		Opportunity: "Pengembangan diri mempercepat kesiapan level berikutnya",
	},
	18: {
		Focus:       "pertumbuhan akun baru yang dibuka tim",
		Aktivitas:   "Tetapkan kuota NA tim mingguan dan pantau di papan kinerja",
		Output:      "NA tim mencapai target level kuartal",
		Risiko:      "Pipeline akun tim mengering dan margin kuartal depan turun",
		SaranCepat:  "Jalankan kampanye pembukaan akun tim selama 2 minggu",
		Opportunity: "Pertumbuhan akun tim menjadi mesin margin berkelanjutan",
	},
}
