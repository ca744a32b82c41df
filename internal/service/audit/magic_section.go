package audit

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
)

type zodiacSign struct {
	name    string
	element string
	// month and endDay mark the last day of the sign
	month  time.Month
	endDay int
}

// zodiacCutoffs lists each sign by the month in which it ends. A date after the
// cutoff day belongs to the next sign.
var zodiacCutoffs = []zodiacSign{
	{name: "Capricorn", element: "tanah", month: time.January, endDay: 19},
	{name: "Aquarius", element: "udara", month: time.February, endDay: 18},
	{name: "Pisces", element: "air", month: time.March, endDay: 20},
	{name: "Aries", element: "api", month: time.April, endDay: 19},
	{name: "Taurus", element: "tanah", month: time.May, endDay: 20},
	{name: "Gemini", element: "udara", month: time.June, endDay: 20},
	{name: "Cancer", element: "air", month: time.July, endDay: 22},
	{name: "Leo", element: "api", month: time.August, endDay: 22},
	{name: "Virgo", element: "tanah", month: time.September, endDay: 22},
	{name: "Libra", element: "udara", month: time.October, endDay: 22},
	{name: "Scorpio", element: "air", month: time.November, endDay: 21},
	{name: "Sagitarius", element: "api", month: time.December, endDay: 21},
}

func zodiacOf(birth time.Time) zodiacSign {
	idx := int(birth.Month()) - 1
	if birth.Day() > zodiacCutoffs[idx].endDay {
		idx = (idx + 1) % len(zodiacCutoffs)
	}
	return zodiacCutoffs[idx]
}

func generationOf(birth time.Time) audit.Generation {
	switch y := birth.Year(); {
	case y >= 1997:
		return audit.GenerationZ
	case y >= 1981:
		return audit.GenerationMillennial
	case y >= 1965:
		return audit.GenerationX
	default:
		return audit.GenerationBoomer
	}
}

type profileNarrative struct {
	title     string
	narasi    string
	coaching  string
	callToAct string
}

var profileNarratives = map[audit.ProfileTag]profileNarrative{
	audit.ProfileLeader: {
		title:     "Sang Penggerak",
		narasi:    "{nama} menunjukkan kinerja dan perilaku yang sama kuatnya sebagai {jabatan}.",
		coaching:  "Fokus berikutnya adalah mencetak pemimpin baru dari dalam tim.",
		callToAct: "Ambil satu calon pemimpin di tim dan dampingi hingga siap naik level.",
	},
	audit.ProfileVisionary: {
		title:     "Sang Visioner",
		narasi:    "{nama} sudah membuktikan hasil sebagai {jabatan}; kini saatnya perilaku kepemimpinan menyusul.",
		coaching:  "Jembatani hasil angka dengan konsistensi perilaku sehari-hari.",
		callToAct: "Pilih satu pilar perilaku terlemah dan latih setiap hari selama 30 hari.",
	},
	audit.ProfilePerformer: {
		title:     "Sang Pekerja Tangguh",
		narasi:    "{nama} memiliki fondasi perilaku yang kuat sebagai {jabatan}; hasil angka tinggal menunggu dipercepat.",
		coaching:  "Ubah disiplin dan sikap positif menjadi aktivitas penghasil margin.",
		callToAct: "Tetapkan target margin mingguan dan laporkan progresnya setiap Jumat.",
	},
	audit.ProfileAtRisk: {
		title:     "Sang Pejuang",
		narasi:    "{nama} sedang berada di titik kritis sebagai {jabatan}, dan setiap langkah kecil kini sangat berarti.",
		coaching:  "Mulai dari satu kebiasaan dasar dan ukur kemajuannya setiap minggu.",
		callToAct: "Temui atasan minggu ini dan sepakati tiga aksi prioritas 30 hari.",
	},
}

var elementBoosters = map[string]string{
	"api":   "Energi {zodiak} yang berapi-api cocok untuk membuka prospek baru dan memimpin dari depan.",
	"tanah": "Ketekunan {zodiak} adalah modal untuk membangun pipeline yang stabil dan konsisten.",
	"udara": "Kelincahan berpikir {zodiak} membantu meyakinkan nasabah dan menginspirasi tim.",
	"air":   "Kepekaan {zodiak} memperkuat hubungan jangka panjang dengan nasabah dan anggota tim.",
}

var generationNotes = map[audit.Generation]struct {
	narasi string
	quote  string
}{
	audit.GenerationZ: {
		narasi: "Sebagai Gen Z, kecepatan belajar dan kefasihan digital adalah keunggulan alami.",
		quote:  "Mulai sekarang, sempurnakan sambil berjalan.",
	},
	audit.GenerationMillennial: {
		narasi: "Sebagai Millennial, keseimbangan antara ambisi dan kolaborasi menjadi kekuatan utama.",
		quote:  "Tujuan besar dicapai lewat kebiasaan kecil yang konsisten.",
	},
	audit.GenerationX: {
		narasi: "Sebagai Gen X, pengalaman dan kemandirian adalah jangkar yang dipercaya tim.",
		quote:  "Pengalaman adalah guru terbaik, asal terus mau belajar.",
	},
	audit.GenerationBoomer: {
		narasi: "Sebagai Boomer, kebijaksanaan dan jaringan panjang adalah aset yang tak tergantikan.",
		quote:  "Warisan terbaik seorang pemimpin adalah pemimpin berikutnya.",
	},
}

// magicSection composes the motivational narrative. It only reads the profile and
// the identity, and always yields non-empty text.
func magicSection(sub audit.AuditSubmission, profile audit.ProfileTag) audit.MagicSection {
	birth := sub.BirthDate()
	sign := zodiacOf(birth)
	gen := generationOf(birth)

	pn, ok := profileNarratives[profile]
	if !ok {
		pn = profileNarratives[audit.ProfileAtRisk]
	}
	gn := generationNotes[gen]

	r := strings.NewReplacer(
		"{nama}", sub.Nama,
		"{jabatan}", sub.Jabatan,
		"{zodiak}", sign.name,
	)

	return audit.MagicSection{
		Julukan:           pn.title + " " + sign.name,
		Narasi:            r.Replace(pn.narasi + " " + gn.narasi),
		Zodiak:            sign.name,
		Generasi:          gen,
		ZodiakBooster:     r.Replace(elementBoosters[sign.element]),
		CoachingHighlight: r.Replace(pn.coaching),
		CallToAction:      r.Replace(pn.callToAct),
		Quote:             gn.quote,
	}
}
