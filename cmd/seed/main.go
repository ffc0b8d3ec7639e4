package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"secaware/internal/config"
	"secaware/internal/db"
	"secaware/internal/model"
	"secaware/internal/repository"
)

const samplePassword = "User123456!"

type seedQuestion struct {
	QuestionAr string
	QuestionEn string
	OptionsAr  []string
	OptionsEn  []string
	Correct    int
}

type seedQuiz struct {
	TitleAr   string
	TitleEn   string
	PassScore int
	Questions []seedQuestion
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Report{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizResult{},
		&model.Article{},
		&model.TipAlert{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)
	quizRepo := repository.NewQuizRepository(gormDB)
	contentRepo := repository.NewContentRepository(gormDB)

	admin := ensureUser(ctx, userRepo, model.User{
		FullName:   "المسؤول",
		Email:      cfg.AdminEmail,
		Department: "IT",
		JobRole:    "مسؤول النظام",
		Role:       model.RoleAdmin,
		IsActive:   true,
	}, cfg.AdminPassword)

	user1 := ensureUser(ctx, userRepo, model.User{
		FullName:   "أحمد محمد",
		Email:      "ahmed@example.com",
		Department: "IT",
		JobRole:    "مهندس أمان",
		Role:       model.RoleUser,
		IsActive:   true,
	}, samplePassword)

	user2 := ensureUser(ctx, userRepo, model.User{
		FullName:   "فاطمة علي",
		Email:      "fatima@example.com",
		Department: "HR",
		JobRole:    "موظفة موارد بشرية",
		Role:       model.RoleUser,
		IsActive:   true,
	}, samplePassword)

	log.Printf("Users ready: admin=%d user1=%d user2=%d", admin.ID, user1.ID, user2.ID)

	seedArticles(ctx, contentRepo)
	seedTipsAlerts(ctx, contentRepo)
	seedQuizzes(ctx, quizRepo)
	seedReports(ctx, reportRepo, user1.ID, user2.ID)

	log.Println("Database seeded successfully")
}

func ensureUser(ctx context.Context, users repository.UserRepository, u model.User, password string) *model.User {
	existing, err := users.FindByEmail(ctx, u.Email)
	if err == nil {
		return existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up user %s: %v", u.Email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password for %s: %v", u.Email, err)
	}
	u.PasswordHash = string(hash)

	if err := users.Create(ctx, &u); err != nil {
		log.Fatalf("Failed to create user %s: %v", u.Email, err)
	}
	log.Printf("Created user %s", u.Email)
	return &u
}

func seedArticles(ctx context.Context, content repository.ContentRepository) {
	count, err := content.CountArticles(ctx)
	if err != nil {
		log.Fatalf("Failed to count articles: %v", err)
	}
	if count > 0 {
		log.Printf("Articles already present (%d), skipping", count)
		return
	}

	articles := []model.Article{
		{
			TitleAr:   "مقدمة في الأمن السيبراني",
			TitleEn:   "Introduction to Cybersecurity",
			ContentAr: "الأمن السيبراني هو ممارسة حماية الأنظمة والشبكات والبرامج من الهجمات الرقمية. تهدف هذه الهجمات عادةً إلى الوصول إلى المعلومات الحساسة أو تغييرها أو تدميرها أو ابتزاز المستخدمين.",
			ContentEn: "Cybersecurity is the practice of protecting systems, networks, and programs from digital attacks. These attacks are usually aimed at accessing, changing, or destroying sensitive information, extorting money from users, or interrupting normal business processes.",
		},
		{
			TitleAr:   "كيفية إنشاء كلمة مرور قوية",
			TitleEn:   "How to Create a Strong Password",
			ContentAr: "كلمة المرور القوية هي خط الدفاع الأول ضد الوصول غير المصرح به إلى حساباتك. يجب أن تتكون من 12 حرفاً على الأقل وتجمع بين الأحرف الكبيرة والصغيرة والأرقام والرموز.",
			ContentEn: "A strong password is your first line of defense against unauthorized access to your accounts. It should consist of at least 12 characters and combine uppercase and lowercase letters, numbers, and symbols.",
		},
		{
			TitleAr:   "التعرف على هجمات التصيد الاحتيالي",
			TitleEn:   "Recognizing Phishing Attacks",
			ContentAr: "التصيد الاحتيالي هو محاولة خبيثة للحصول على معلومات حساسة مثل أسماء المستخدمين وكلمات المرور وتفاصيل بطاقات الائتمان. تحذر من رسائل البريد الإلكتروني المريبة والروابط المشبوهة.",
			ContentEn: "Phishing is a malicious attempt to obtain sensitive information such as usernames, passwords, and credit card details. Be wary of suspicious emails and suspicious links.",
		},
		{
			TitleAr:   "حماية بياناتك الشخصية على الإنترنت",
			TitleEn:   "Protecting Your Personal Data Online",
			ContentAr: "أصبحت حماية البيانات الشخصية أكثر أهمية من أي وقت مضى. استخدم كلمات مرور قوية، فعّل المصادقة الثنائية، وراجع إعدادات الخصوصية بانتظام.",
			ContentEn: "Personal data protection has become more important than ever. Use strong passwords, enable two-factor authentication, and regularly review privacy settings.",
		},
		{
			TitleAr:   "أمن الأجهزة المحمولة",
			TitleEn:   "Mobile Device Security",
			ContentAr: "أصبحت الأجهزة المحمولة جزءاً لا يتجزأ من حياتنا اليومية. حافظ على تحديث نظام التشغيل والتطبيقات، استخدم قفل الشاشة، وكن حذراً من التطبيقات المريبة.",
			ContentEn: "Mobile devices have become an integral part of our daily lives. Keep your operating system and apps updated, use screen locks, and be careful with suspicious apps.",
		},
	}

	for i := range articles {
		articles[i].IsPublished = true
		if err := content.CreateArticle(ctx, &articles[i]); err != nil {
			log.Fatalf("Failed to create article %q: %v", articles[i].TitleEn, err)
		}
	}
	log.Printf("Created %d articles", len(articles))
}

func seedTipsAlerts(ctx context.Context, content repository.ContentRepository) {
	existing, err := content.ListTipAlerts(ctx, "")
	if err != nil {
		log.Fatalf("Failed to list tips/alerts: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Tips/alerts already present (%d), skipping", len(existing))
		return
	}

	items := []model.TipAlert{
		{Type: model.TipAlertTypeTip, ContentAr: "استخدم كلمات مرور قوية تتكون من 12 حرفاً على الأقل", ContentEn: "Use strong passwords consisting of at least 12 characters"},
		{Type: model.TipAlertTypeTip, ContentAr: "فعّل المصادقة الثنائية على جميع حساباتك المهمة", ContentEn: "Enable two-factor authentication on all your important accounts"},
		{Type: model.TipAlertTypeTip, ContentAr: "حدّث برامجك بانتظام للحصول على أحدث إصلاحات الأمان", ContentEn: "Update your software regularly to get the latest security patches"},
		{Type: model.TipAlertTypeTip, ContentAr: "كن حذراً من رسائل البريد الإلكتروني المريبة", ContentEn: "Be careful with suspicious emails"},
		{Type: model.TipAlertTypeTip, ContentAr: "استخدم VPN عند الاتصال بشبكات Wi-Fi العامة", ContentEn: "Use VPN when connecting to public Wi-Fi networks"},
		{Type: model.TipAlertTypeTip, ContentAr: "راجع إعدادات الخصوصية على وسائل التواصل الاجتماعي", ContentEn: "Review privacy settings on social media"},
		{Type: model.TipAlertTypeTip, ContentAr: "قم بعمل نسخ احتياطية منتظمة لبياناتك المهمة", ContentEn: "Make regular backups of your important data"},
		{Type: model.TipAlertTypeTip, ContentAr: "استخدم قفل الشاشة على جميع أجهزتك", ContentEn: "Use screen lock on all your devices"},
		{Type: model.TipAlertTypeAlert, ContentAr: "تحذير: اكتُشف هجوم تصيد احتيالي يستهدف بيانات العملاء", ContentEn: "Alert: A phishing attack targeting customer data has been discovered"},
		{Type: model.TipAlertTypeAlert, ContentAr: "تنبيه أمني: ثغرة جديدة في متصفح Chrome تتطلب تحديثاً فوراً", ContentEn: "Security Alert: New vulnerability in Chrome browser requires immediate update"},
		{Type: model.TipAlertTypeAlert, ContentAr: "تحذير: محاولات اختراق متزايدة على حسابات البريد الإلكتروني", ContentEn: "Warning: Increasing attempts to breach email accounts"},
	}

	for i := range items {
		if err := content.CreateTipAlert(ctx, &items[i]); err != nil {
			log.Fatalf("Failed to create tip/alert: %v", err)
		}
	}
	log.Printf("Created %d tips/alerts", len(items))
}

func seedQuizzes(ctx context.Context, quizzes repository.QuizRepository) {
	count, err := quizzes.CountQuizzes(ctx)
	if err != nil {
		log.Fatalf("Failed to count quizzes: %v", err)
	}
	if count > 0 {
		log.Printf("Quizzes already present (%d), skipping", count)
		return
	}

	data := []seedQuiz{
		{
			TitleAr:   "اختبار الأمن السيبراني الأساسي",
			TitleEn:   "Basic Cybersecurity Quiz",
			PassScore: 70,
			Questions: []seedQuestion{
				{
					QuestionAr: "ما هو الهدف الأساسي من الأمن السيبراني؟",
					QuestionEn: "What is the primary goal of cybersecurity?",
					OptionsAr:  []string{"زيادة سرعة الإنترنت", "حماية الأنظمة والبيانات من التهديدات", "تطوير تطبيقات الهاتف", "تحسين جودة الكاميرات"},
					OptionsEn:  []string{"Increase internet speed", "Protect systems and data from threats", "Develop mobile applications", "Improve camera quality"},
					Correct:    1,
				},
				{
					QuestionAr: "ما هو المصادقة الثنائية (2FA)؟",
					QuestionEn: "What is Two-Factor Authentication (2FA)?",
					OptionsAr:  []string{"استخدام كلمة مرور واحدة", "استخدام بصمة الإصبع فقط", "طبقة أمان إضافية تتطلب طريقتين للتحقق", "تسجيل الدخول تلقائياً"},
					OptionsEn:  []string{"Using a single password", "Using only a fingerprint", "An extra layer of security requiring two verification methods", "Automatic login"},
					Correct:    2,
				},
				{
					QuestionAr: "ماذا يعني \"البرامج الضارة\" (Malware)؟",
					QuestionEn: "What does \"Malware\" mean?",
					OptionsAr:  []string{"برنامج مفيد لتحسين الأداء", "برنامج مصمم لإلحاق الضرر بالأنظمة", "نظام تشغيل جديد", "أداة لتصميم الجرافيك"},
					OptionsEn:  []string{"Useful software for performance improvement", "Software designed to harm systems", "A new operating system", "A graphic design tool"},
					Correct:    1,
				},
				{
					QuestionAr: "ما هي أفضل طريقة لحماية كلمة المرور؟",
					QuestionEn: "What is the best way to protect a password?",
					OptionsAr:  []string{"كتابتها على ورقة", "مشاركتها مع الزملاء", "استخدام مدير كلمات مرور قوي", "استخدام كلمة مرور سهلة التذكر"},
					OptionsEn:  []string{"Writing it on paper", "Sharing it with colleagues", "Using a strong password manager", "Using an easy-to-remember password"},
					Correct:    2,
				},
				{
					QuestionAr: "ما هو هجوم حجب الخدمة (DDoS)؟",
					QuestionEn: "What is a Denial of Service (DDoS) attack?",
					OptionsAr:  []string{"هجوم يهدف إلى سرقة البيانات", "هجوم يهدف إلى إغراق الخادم بالطلبات لتعطيله", "هجوم يهدف إلى تغيير إعدادات النظام", "هجوم يهدف إلى نشر الإعلانات"},
					OptionsEn:  []string{"An attack aimed at stealing data", "An attack aimed at flooding a server with requests to shut it down", "An attack aimed at changing system settings", "An attack aimed at spreading advertisements"},
					Correct:    1,
				},
			},
		},
		{
			TitleAr:   "اختبار أمن كلمات المرور",
			TitleEn:   "Password Security Quiz",
			PassScore: 75,
			Questions: []seedQuestion{
				{
					QuestionAr: "ما هي الممارسة الأفضل لإنشاء كلمة مرور؟",
					QuestionEn: "What is the best practice for creating a password?",
					OptionsAr:  []string{"استخدام اسم الحيوان الأليف", "استخدام جملة طويلة ومعقدة", "استخدام تاريخ الميلاد", "استخدام كلمة واحدة شائعة"},
					OptionsEn:  []string{"Using a pet's name", "Using a long and complex passphrase", "Using a birth date", "Using a single common word"},
					Correct:    1,
				},
				{
					QuestionAr: "ما هو الغرض من مدير كلمات المرور؟",
					QuestionEn: "What is the purpose of a password manager?",
					OptionsAr:  []string{"تخزين كلمات المرور بشكل غير آمن", "توليد وتخزين كلمات مرور قوية ومشفرة", "مشاركة كلمات المرور مع الآخرين", "تذكيرك بكلمات المرور الضعيفة فقط"},
					OptionsEn:  []string{"Storing passwords insecurely", "Generating and storing strong, encrypted passwords", "Sharing passwords with others", "Only reminding you of weak passwords"},
					Correct:    1,
				},
				{
					QuestionAr: "ماذا يجب أن تفعل إذا نسيت كلمة المرور الخاصة بك؟",
					QuestionEn: "What should you do if you forget your password?",
					OptionsAr:  []string{"محاولة تخمينها عدة مرات", "الاتصال بالدعم الفني وطلب إعادة تعيينها", "إنشاء حساب جديد", "استخدام نفس كلمة المرور لحساب آخر"},
					OptionsEn:  []string{"Try guessing it multiple times", "Contact technical support and ask for a reset", "Create a new account", "Use the same password for another account"},
					Correct:    1,
				},
				{
					QuestionAr: "ما هو التشفير (Encryption)؟",
					QuestionEn: "What is Encryption?",
					OptionsAr:  []string{"تحويل البيانات إلى شكل غير قابل للقراءة إلا للمصرح لهم", "إخفاء البيانات عن الجميع", "ضغط حجم الملفات", "زيادة سرعة نقل البيانات"},
					OptionsEn:  []string{"Converting data into an unreadable form except for authorized parties", "Hiding data from everyone", "Compressing file size", "Increasing data transfer speed"},
					Correct:    0,
				},
			},
		},
		{
			TitleAr:   "اختبار التصيد الاحتيالي",
			TitleEn:   "Phishing Quiz",
			PassScore: 80,
			Questions: []seedQuestion{
				{
					QuestionAr: "ما هي علامات التصيد الاحتيالي؟",
					QuestionEn: "What are signs of phishing?",
					OptionsAr:  []string{"أخطاء إملائية وطلبات عاجلة", "روابط غريبة", "طلب معلومات شخصية", "جميع ما سبق"},
					OptionsEn:  []string{"Spelling errors and urgent requests", "Strange links", "Requests for personal information", "All of the above"},
					Correct:    3,
				},
				{
					QuestionAr: "ماذا تفعل إذا تلقيت بريداً مريباً؟",
					QuestionEn: "What should you do if you receive a suspicious email?",
					OptionsAr:  []string{"انقر على الروابط", "احذفه فوراً", "أرسله لآخرين", "أبلغ عن البريد كرسالة مزعجة"},
					OptionsEn:  []string{"Click on the links", "Delete it immediately", "Send it to others", "Report the email as spam"},
					Correct:    3,
				},
				{
					QuestionAr: "كيف تتحقق من صحة موقع ويب؟",
					QuestionEn: "How do you verify a website is legitimate?",
					OptionsAr:  []string{"تحقق من HTTPS والقفل", "تحقق من عنوان URL", "ابحث عن علامات الأمان", "جميع ما سبق"},
					OptionsEn:  []string{"Check for HTTPS and lock", "Check the URL address", "Look for security badges", "All of the above"},
					Correct:    3,
				},
				{
					QuestionAr: "ما هو التصيد الاحتيالي الموجه (Spear Phishing)؟",
					QuestionEn: "What is Spear Phishing?",
					OptionsAr:  []string{"هجوم تصيد عشوائي", "هجوم تصيد يستهدف شخصاً أو مؤسسة محددة", "هجوم تصيد عبر الهاتف", "هجوم تصيد عبر الرسائل النصية"},
					OptionsEn:  []string{"A random phishing attack", "A phishing attack targeting a specific person or organization", "A phishing attack via phone", "A phishing attack via text message"},
					Correct:    1,
				},
				{
					QuestionAr: "ماذا يعني \"HTTPS\" في عنوان الموقع؟",
					QuestionEn: "What does \"HTTPS\" in a website address mean?",
					OptionsAr:  []string{"الموقع غير آمن", "الموقع يستخدم اتصالاً مشفراً وآمناً", "الموقع بطيء", "الموقع مخصص للهواة"},
					OptionsEn:  []string{"The site is insecure", "The site uses an encrypted and secure connection", "The site is slow", "The site is for amateurs"},
					Correct:    1,
				},
			},
		},
	}

	for _, q := range data {
		quiz := model.Quiz{TitleAr: q.TitleAr, TitleEn: q.TitleEn, PassScore: q.PassScore}
		if err := quizzes.CreateQuiz(ctx, &quiz); err != nil {
			log.Fatalf("Failed to create quiz %q: %v", q.TitleEn, err)
		}

		for _, sq := range q.Questions {
			question := model.QuizQuestion{
				QuizID:        quiz.ID,
				QuestionAr:    sq.QuestionAr,
				QuestionEn:    sq.QuestionEn,
				CorrectOption: sq.Correct,
			}
			options := make([]model.QuizOption, 0, len(sq.OptionsAr))
			for i := range sq.OptionsAr {
				options = append(options, model.QuizOption{
					OptionAr: sq.OptionsAr[i],
					OptionEn: sq.OptionsEn[i],
				})
			}
			if err := quizzes.CreateQuestion(ctx, &question, options); err != nil {
				log.Fatalf("Failed to create question for quiz %q: %v", q.TitleEn, err)
			}
		}
	}
	log.Printf("Created %d quizzes", len(data))
}

func seedReports(ctx context.Context, reports repository.ReportRepository, user1ID, user2ID uint) {
	count, err := reports.Count(ctx, "")
	if err != nil {
		log.Fatalf("Failed to count reports: %v", err)
	}
	if count > 0 {
		log.Printf("Reports already present (%d), skipping", count)
		return
	}

	samples := []model.Report{
		{
			UserID:      user1ID,
			ReportType:  model.ReportTypeXSS,
			Title:       "ثغرة XSS في صفحة البحث",
			Description: "تم اكتشاف ثغرة حقن سكريبت في صفحة البحث تسمح بتنفيذ كود JavaScript غير موثوق به",
			Status:      model.ReportStatusNew,
		},
		{
			UserID:      user2ID,
			ReportType:  model.ReportTypeSQLi,
			Title:       "ثغرة SQL Injection في نموذج تسجيل الدخول",
			Description: "تم العثور على ثغرة حقن SQL في حقل البريد الإلكتروني في نموذج تسجيل الدخول",
			Status:      model.ReportStatusInReview,
		},
		{
			UserID:      user1ID,
			ReportType:  model.ReportTypeAuth,
			Title:       "مشكلة في التحقق من الصلاحيات",
			Description: "يمكن للمستخدمين الوصول إلى بيانات المستخدمين الآخرين من خلال تعديل معرف المستخدم في URL",
			Status:      model.ReportStatusClosed,
		},
		{
			UserID:      user2ID,
			ReportType:  model.ReportTypeCSRF,
			Title:       "ثغرة CSRF في نموذج تغيير كلمة المرور",
			Description: "تم اكتشاف ثغرة تزوير طلب عبر المواقع في نموذج تغيير كلمة المرور",
			Status:      model.ReportStatusNew,
		},
	}

	for i := range samples {
		if err := reports.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("Failed to create report %q: %v", samples[i].Title, err)
		}
	}
	log.Printf("Created %d reports", len(samples))
}
